package usecase

import (
	"bytes"
	"context"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"CANDIDATE", "EMAIL", "USERNAME", "RESUME", "COVER LETTER", "APPLIED AT"}

// ExportApplications renders a job's applications as an Excel workbook.
// Only the recruiter who posted the job may export it.
func (uc *applicationUsecase) ExportApplications(ctx context.Context, actor domain.Actor, jobID string) ([]byte, string, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return nil, "", denied(ctx, uc.secLogger, actor, "applications", err)
	}
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, "", repoErr(err, "Job not found")
	}
	if err := domain.RequireOwnership(job.RecruiterID, actor.ID, "job"); err != nil {
		return nil, "", denied(ctx, uc.secLogger, actor, "job:"+jobID, err)
	}

	apps, err := uc.applicationRepo.FetchByJob(ctx, jobID)
	if err != nil {
		return nil, "", repoErr(err, "Job not found")
	}

	data, err := renderApplications(apps)
	if err != nil {
		return nil, "", err
	}
	uc.secLogger.LogDataExport(ctx, actor.ID, jobID, len(apps))

	filename := fmt.Sprintf("applications_%s_%s.xlsx", job.ID, uc.now().Format("20060102_150405"))
	return data, filename, nil
}

func renderApplications(apps []domain.ApplicationView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, value := range applicationRow(app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func applicationRow(app domain.ApplicationView) []string {
	var name, email, username, coverLetter string
	if c := app.Candidate; c != nil {
		name = c.FirstName + " " + c.LastName
		email = c.Email
		username = c.Username
	}
	if app.CoverLetter != nil {
		coverLetter = *app.CoverLetter
	}
	return []string{name, email, username, app.Resume, coverLetter, app.AppliedAt.Format("2006-01-02 15:04")}
}
