package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-jobboard-backend/internal/domain"
)

// memStore is an in-memory entity store backing the repository interfaces.
type memStore struct {
	mu         sync.Mutex
	seq        int
	order      map[string]int
	users      map[string]domain.User
	categories map[string]domain.Category
	jobs       map[string]domain.Job
	apps       map[string]domain.Application
	tweets     map[string]domain.Tweet
	comments   map[string]domain.Comment
}

func newMemStore() *memStore {
	return &memStore{
		order:      map[string]int{},
		users:      map[string]domain.User{},
		categories: map[string]domain.Category{},
		jobs:       map[string]domain.Job{},
		apps:       map[string]domain.Application{},
		tweets:     map[string]domain.Tweet{},
		comments:   map[string]domain.Comment{},
	}
}

func (s *memStore) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func (s *memStore) sorted(ids []string) []string {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })
	return ids
}

func (s *memStore) addUser(id string, accountType domain.AccountType) domain.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.User{
		ID:          id,
		Username:    id,
		Email:       id + "@example.com",
		FirstName:   strings.ToUpper(id[:1]) + id[1:],
		LastName:    "Tester",
		AccountType: accountType,
	}
	s.track(id)
	return domain.Actor{ID: id, Email: id + "@example.com", AccountType: accountType}
}

func (s *memStore) addCategory(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = domain.Category{ID: id, Name: name}
	s.track(id)
}

func (s *memStore) summary(id string) *domain.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &domain.UserSummary{ID: u.ID, Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, AccountType: u.AccountType}
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	r.track(user.ID)
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.populate(u), nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return r.populate(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) populate(u domain.User) *domain.User {
	u.JobPostings = []string{}
	for id, j := range r.jobs {
		if j.RecruiterID == u.ID {
			u.JobPostings = append(u.JobPostings, id)
		}
	}
	u.JobPostings = r.sorted(u.JobPostings)

	appIDs := []string{}
	for id, a := range r.apps {
		if a.CandidateID == u.ID {
			appIDs = append(appIDs, id)
		}
	}
	u.JobApplications = []string{}
	for _, id := range r.sorted(appIDs) {
		u.JobApplications = append(u.JobApplications, r.apps[id].JobID)
	}
	return &u
}

func (r memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r memUsers) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	r.users[id] = u
	return nil
}

func (r memUsers) GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]domain.UserSummary{}
	for _, id := range ids {
		if s := r.summary(id); s != nil {
			out[id] = *s
		}
	}
	return out, nil
}

// categories

type memCategories struct{ *memStore }

func (r memCategories) Create(ctx context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.categories[c.ID] = *c
	r.track(c.ID)
	return nil
}

func (r memCategories) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memCategories) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memCategories) List(ctx context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Category{}
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// jobs

type memJobs struct{ *memStore }

func (r memJobs) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[job.CategoryID]; !ok {
		return domain.ErrNotFound
	}
	r.jobs[job.ID] = *job
	r.track(job.ID)
	return nil
}

func (r memJobs) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &j, nil
}

func (r memJobs) view(j domain.Job) domain.JobView {
	v := domain.JobView{Job: j, Recruiter: r.summary(j.RecruiterID), Applications: []string{}}
	if c, ok := r.categories[j.CategoryID]; ok {
		v.Category = &c
	}
	for id, a := range r.apps {
		if a.JobID == j.ID {
			v.Applications = append(v.Applications, id)
		}
	}
	v.Applications = r.sorted(v.Applications)
	return v
}

func (r memJobs) GetView(ctx context.Context, id string) (*domain.JobView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := r.view(j)
	return &v, nil
}

func (r memJobs) filter(keep func(domain.Job) bool) []domain.JobView {
	ids := []string{}
	for id, j := range r.jobs {
		if keep(j) {
			ids = append(ids, id)
		}
	}
	views := []domain.JobView{}
	for _, id := range r.sorted(ids) {
		views = append(views, r.view(r.jobs[id]))
	}
	return views
}

func (r memJobs) FetchViews(ctx context.Context, limit, offset int) ([]domain.JobView, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.filter(func(domain.Job) bool { return true })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r memJobs) FetchViewsByCategory(ctx context.Context, categoryID string) ([]domain.JobView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(j domain.Job) bool { return j.CategoryID == categoryID }), nil
}

func (r memJobs) FetchViewsByIDs(ctx context.Context, ids []string) ([]domain.JobView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(j domain.Job) bool { return wanted[j.ID] }), nil
}

func (r memJobs) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	r.jobs[job.ID] = *job
	return nil
}

func (r memJobs) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

// applications

type memApps struct{ *memStore }

func (r memApps) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[app.JobID]; !ok {
		return domain.ErrNotFound
	}
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.CandidateID == app.CandidateID {
			return domain.ErrDuplicate
		}
	}
	r.apps[app.ID] = *app
	r.track(app.ID)
	return nil
}

func (r memApps) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r memApps) GetView(ctx context.Context, id string) (*domain.ApplicationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := domain.ApplicationView{Application: a, Candidate: r.summary(a.CandidateID)}
	if j, ok := r.jobs[a.JobID]; ok {
		v.Job = &j
	}
	return &v, nil
}

func (r memApps) fetch(keep func(domain.Application) bool) []domain.ApplicationView {
	ids := []string{}
	for id, a := range r.apps {
		if keep(a) {
			ids = append(ids, id)
		}
	}
	views := []domain.ApplicationView{}
	for _, id := range r.sorted(ids) {
		a := r.apps[id]
		v := domain.ApplicationView{Application: a, Candidate: r.summary(a.CandidateID)}
		if j, ok := r.jobs[a.JobID]; ok {
			v.Job = &j
		}
		views = append(views, v)
	}
	return views
}

func (r memApps) FetchByJob(ctx context.Context, jobID string) ([]domain.ApplicationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetch(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r memApps) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.ApplicationView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fetch(func(a domain.Application) bool { return a.CandidateID == candidateID }), nil
}

func (r memApps) CheckExists(ctx context.Context, jobID, candidateID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (r memApps) Update(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return domain.ErrNotFound
	}
	r.apps[app.ID] = *app
	return nil
}

func (r memApps) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r memApps) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.apps {
		if a.JobID == jobID {
			delete(r.apps, id)
			n++
		}
	}
	return n, nil
}

// memTx runs fn inline.
type memTx struct{}

func (memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// tweets

type memTweets struct{ *memStore }

func (r memTweets) Create(ctx context.Context, tweet *domain.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tweet.ID = fmt.Sprintf("tweet-%d", r.seq+1)
	tweet.Likes = []string{}
	tweet.SharedBy = []string{}
	r.tweets[tweet.ID] = *tweet
	r.track(tweet.ID)
	return nil
}

func (r memTweets) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.Likes = append([]string{}, t.Likes...)
	t.SharedBy = append([]string{}, t.SharedBy...)
	return &t, nil
}

func (r memTweets) Fetch(ctx context.Context, authorID string) ([]domain.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, t := range r.tweets {
		if authorID == "" || t.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	ids = r.sorted(ids)
	out := []domain.Tweet{}
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.tweets[ids[i]])
	}
	return out, nil
}

func (r memTweets) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Content, t.UpdatedAt = content, at
	r.tweets[id] = t
	return nil
}

func (r memTweets) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

func (r memTweets) members(t *domain.Tweet, set domain.TweetSet) *[]string {
	if set == domain.TweetShares {
		return &t.SharedBy
	}
	return &t.Likes
}

func (r memTweets) AddMember(ctx context.Context, id string, set domain.TweetSet, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if t.HasMember(set, userID) {
		return false, nil
	}
	m := r.members(&t, set)
	*m = append(append([]string{}, *m...), userID)
	r.tweets[id] = t
	return true, nil
}

func (r memTweets) RemoveMember(ctx context.Context, id string, set domain.TweetSet, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !t.HasMember(set, userID) {
		return false, nil
	}
	m := r.members(&t, set)
	kept := []string{}
	for _, member := range *m {
		if member != userID {
			kept = append(kept, member)
		}
	}
	*m = kept
	r.tweets[id] = t
	return true, nil
}

func (r memTweets) ListIDsByMember(ctx context.Context, set domain.TweetSet, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, t := range r.tweets {
		if t.HasMember(set, userID) {
			ids = append(ids, id)
		}
	}
	return r.sorted(ids), nil
}

func (r memTweets) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, t := range r.tweets {
		if t.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	return r.sorted(ids), nil
}

// comments

type memComments struct{ *memStore }

func (r memComments) Create(ctx context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = fmt.Sprintf("comment-%d", r.seq+1)
	r.comments[c.ID] = *c
	r.track(c.ID)
	return nil
}

func (r memComments) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memComments) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Content, c.UpdatedAt = content, at
	r.comments[id] = c
	return nil
}

func (r memComments) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r memComments) FetchByTweet(ctx context.Context, tweetID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, c := range r.comments {
		if c.TweetID == tweetID {
			ids = append(ids, id)
		}
	}
	out := []domain.Comment{}
	for _, id := range r.sorted(ids) {
		out = append(out, r.comments[id])
	}
	return out, nil
}

func (r memComments) DeleteByTweet(ctx context.Context, tweetID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.comments {
		if c.TweetID == tweetID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

func (r memComments) ListIDsByTweets(ctx context.Context, tweetIDs []string) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string][]string{}
	for _, tid := range tweetIDs {
		ids := []string{}
		for id, c := range r.comments {
			if c.TweetID == tid {
				ids = append(ids, id)
			}
		}
		out[tid] = r.sorted(ids)
	}
	return out, nil
}

func (r memComments) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := []string{}
	for id, c := range r.comments {
		if c.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	return r.sorted(ids), nil
}
