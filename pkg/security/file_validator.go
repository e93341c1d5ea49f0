package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte signatures for resume documents
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// ContentTypes maps accepted extensions to the content type stored with the object
var ContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Sniffed MIME types accepted per extension. DOC and DOCX sniff as generic containers.
var allowedMIME = map[string]map[string]bool{
	".pdf":  {"application/pdf": true},
	".doc":  {"application/octet-stream": true, "application/msword": true},
	".docx": {"application/zip": true, "application/octet-stream": true, ContentTypes[".docx"]: true},
}

// ValidateResume runs three checks on an uploaded resume:
// extension whitelist, magic bytes and sniffed MIME type.
func ValidateResume(filename string, data []byte, maxBytes int64) FileValidationResult {
	detected := http.DetectContentType(data)
	result := FileValidationResult{DetectedMIME: detected}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if _, ok := magicBytes[ext]; !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		result.Error = "file is too large"
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if !allowedMIME[ext][detected] {
		result.Error = "MIME type not allowed: " + detected
		return result
	}

	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := magicBytes[ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}
