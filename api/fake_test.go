package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roboarchive/roboarchive-backend/auth"
	"github.com/roboarchive/roboarchive-backend/config"
	"github.com/roboarchive/roboarchive-backend/database"
	"github.com/roboarchive/roboarchive-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Programmable fakes for the store interfaces. Each method records its
// name, defers to the matching Func hook when set, and otherwise falls
// back to a small in-memory default so end-to-end handler tests can
// run without a database.

func ptr[T any](v T) *T { return &v }

// errDuplicate carries the driver's unique-violation phrasing so the
// error classifier maps it to Conflict, same as a real insert would.
var errDuplicate = errors.New(`duplicate key value violates unique constraint "idx_members_email"`)

// ------------------------
// Fake member store
// ------------------------

type fakeMemberStore struct {
	trace   []string
	members map[uint]*models.Member
	nextID  uint

	FindAllFunc     func(ctx context.Context) ([]models.Member, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*models.Member, error)
	FindByEmailFunc func(ctx context.Context, email string) (*models.Member, error)
	CreateFunc      func(ctx context.Context, member *models.Member) error
	UpdateFunc      func(ctx context.Context, id uint, changes database.MemberChanges) (*models.Member, error)
	DeleteFunc      func(ctx context.Context, id uint) error
	StatsFunc       func(ctx context.Context, id uint) (*models.MemberStats, error)
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{
		members: map[uint]*models.Member{},
		nextID:  1,
	}
}

func (f *fakeMemberStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *fakeMemberStore) FindAll(ctx context.Context) ([]models.Member, error) {
	f.record("FindAll")
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx)
	}
	ids := make([]int, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	out := make([]models.Member, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.members[uint(id)])
	}
	return out, nil
}

func (f *fakeMemberStore) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	m, ok := f.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMemberStore) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	f.record("FindByEmail")
	if f.FindByEmailFunc != nil {
		return f.FindByEmailFunc(ctx, email)
	}
	for _, m := range f.members {
		if m.Email == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberStore) Create(ctx context.Context, member *models.Member) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, member)
	}
	for _, m := range f.members {
		if m.Email == member.Email {
			return errDuplicate
		}
	}
	member.ID = f.nextID
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	f.nextID++
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeMemberStore) Update(ctx context.Context, id uint, changes database.MemberChanges) (*models.Member, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, changes)
	}
	m, ok := f.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if changes.Name != nil {
		m.Name = *changes.Name
	}
	if changes.Role != nil {
		m.Role = *changes.Role
	}
	if changes.GraduationYear != nil {
		m.GraduationYear = changes.GraduationYear
	}
	if changes.IsActive != nil {
		m.IsActive = *changes.IsActive
	}
	if changes.PrivilegeLevel != nil {
		m.PrivilegeLevel = *changes.PrivilegeLevel
	}
	m.UpdatedAt = time.Now()
	copied := *m
	return &copied, nil
}

func (f *fakeMemberStore) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	if _, ok := f.members[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeMemberStore) Stats(ctx context.Context, id uint) (*models.MemberStats, error) {
	f.record("Stats")
	if f.StatsFunc != nil {
		return f.StatsFunc(ctx, id)
	}
	return &models.MemberStats{}, nil
}

// ------------------------
// Fake task store
// ------------------------

type fakeTaskStore struct {
	trace  []string
	tasks  map[uint]*models.Task
	nextID uint

	FindAllFunc func(ctx context.Context) ([]models.Task, error)
	CreateFunc  func(ctx context.Context, task *models.Task) error
	UpdateFunc  func(ctx context.Context, id uint, changes database.TaskChanges) (*models.Task, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		tasks:  map[uint]*models.Task{},
		nextID: 1,
	}
}

func (f *fakeTaskStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *fakeTaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	f.record("FindAll")
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx)
	}
	out := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTaskStore) Create(ctx context.Context, task *models.Task) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, task)
	}
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	f.nextID++
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTaskStore) Update(ctx context.Context, id uint, changes database.TaskChanges) (*models.Task, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, changes)
	}
	t, ok := f.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Description != nil {
		t.Description = changes.Description
	}
	if changes.Status != nil {
		t.Status = *changes.Status
		if *changes.Status == models.TaskCompleted {
			now := time.Now()
			t.CompletedAt = &now
		}
	}
	if changes.AssignedTo != nil {
		t.AssignedTo = changes.AssignedTo
	}
	if changes.Deadline != nil {
		t.Deadline = changes.Deadline
	}
	if changes.Priority != nil {
		t.Priority = *changes.Priority
	}
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	if _, ok := f.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.tasks, id)
	return nil
}

// ------------------------
// Fake article store
// ------------------------

type fakeArticleStore struct {
	trace    []string
	articles map[uint]*models.Article
	nextID   uint

	FindAllFunc  func(ctx context.Context, filter database.ArticleFilter) ([]models.Article, error)
	FindByIDFunc func(ctx context.Context, id uint) (*models.Article, error)
	LookupFunc   func(ctx context.Context, id uint) (*models.Article, error)
	CreateFunc   func(ctx context.Context, article *models.Article) error
	UpdateFunc   func(ctx context.Context, id uint, changes database.ArticleChanges) (*models.Article, error)
	DeleteFunc   func(ctx context.Context, id uint) error
}

func newFakeArticleStore() *fakeArticleStore {
	return &fakeArticleStore{
		articles: map[uint]*models.Article{},
		nextID:   1,
	}
}

func (f *fakeArticleStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *fakeArticleStore) FindAll(ctx context.Context, filter database.ArticleFilter) ([]models.Article, error) {
	f.record("FindAll")
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx, filter)
	}
	out := make([]models.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeArticleStore) FindByID(ctx context.Context, id uint) (*models.Article, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a.ViewCount++
	copied := *a
	return &copied, nil
}

func (f *fakeArticleStore) Lookup(ctx context.Context, id uint) (*models.Article, error) {
	f.record("Lookup")
	if f.LookupFunc != nil {
		return f.LookupFunc(ctx, id)
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeArticleStore) Create(ctx context.Context, article *models.Article) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, article)
	}
	article.ID = f.nextID
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	f.nextID++
	copied := *article
	f.articles[article.ID] = &copied
	return nil
}

func (f *fakeArticleStore) Update(ctx context.Context, id uint, changes database.ArticleChanges) (*models.Article, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, changes)
	}
	a, ok := f.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if changes.Title != nil {
		a.Title = *changes.Title
	}
	if changes.Content != nil {
		a.Content = changes.Content
	}
	if changes.Type != nil {
		a.Type = *changes.Type
	}
	if changes.Category != nil {
		a.Category = changes.Category
	}
	if changes.CompetitionYear != nil {
		a.CompetitionYear = changes.CompetitionYear
	}
	if changes.FilePath != nil {
		a.FilePath = changes.FilePath
	}
	a.UpdatedAt = time.Now()
	copied := *a
	return &copied, nil
}

func (f *fakeArticleStore) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	if _, ok := f.articles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.articles, id)
	return nil
}

// ------------------------
// Fake robot store
// ------------------------

type fakeRobotStore struct {
	trace  []string
	robots map[uint]*models.Robot
	nextID uint

	FindAllFunc  func(ctx context.Context, filter database.RobotFilter) ([]models.Robot, error)
	FindByIDFunc func(ctx context.Context, id uint) (*models.Robot, error)
	CreateFunc   func(ctx context.Context, robot *models.Robot) error
	UpdateFunc   func(ctx context.Context, id uint, changes database.RobotChanges) (*models.Robot, error)
	DeleteFunc   func(ctx context.Context, id uint) error
}

func newFakeRobotStore() *fakeRobotStore {
	return &fakeRobotStore{
		robots: map[uint]*models.Robot{},
		nextID: 1,
	}
}

func (f *fakeRobotStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *fakeRobotStore) FindAll(ctx context.Context, filter database.RobotFilter) ([]models.Robot, error) {
	f.record("FindAll")
	if f.FindAllFunc != nil {
		return f.FindAllFunc(ctx, filter)
	}
	out := make([]models.Robot, 0, len(f.robots))
	for _, r := range f.robots {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRobotStore) FindByID(ctx context.Context, id uint) (*models.Robot, error) {
	f.record("FindByID")
	if f.FindByIDFunc != nil {
		return f.FindByIDFunc(ctx, id)
	}
	r, ok := f.robots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRobotStore) Create(ctx context.Context, robot *models.Robot) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, robot)
	}
	robot.ID = f.nextID
	robot.CreatedAt = time.Now()
	robot.UpdatedAt = robot.CreatedAt
	f.nextID++
	copied := *robot
	f.robots[robot.ID] = &copied
	return nil
}

func (f *fakeRobotStore) Update(ctx context.Context, id uint, changes database.RobotChanges) (*models.Robot, error) {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, id, changes)
	}
	r, ok := f.robots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if changes.Name != nil {
		r.Name = *changes.Name
	}
	if changes.CompetitionYear != nil {
		r.CompetitionYear = changes.CompetitionYear
	}
	if changes.TeamLeadID != nil {
		r.TeamLeadID = changes.TeamLeadID
	}
	if changes.Specifications != nil {
		r.Specifications = changes.Specifications
	}
	if changes.PerformanceNotes != nil {
		r.PerformanceNotes = changes.PerformanceNotes
	}
	if changes.FinalRank != nil {
		r.FinalRank = changes.FinalRank
	}
	if changes.FilePath != nil {
		r.FilePath = changes.FilePath
	}
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

func (f *fakeRobotStore) Delete(ctx context.Context, id uint) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, id)
	}
	if _, ok := f.robots[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.robots, id)
	return nil
}

// ------------------------
// Fake attachment store
// ------------------------

type fakeAttachmentStore struct {
	puts    []string
	removes []string

	PutFunc    func(ctx context.Context, kind, originalName string, r io.Reader) (string, error)
	RemoveFunc func(ctx context.Context, relativePath string) error
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{}
}

func (f *fakeAttachmentStore) Put(ctx context.Context, kind, originalName string, r io.Reader) (string, error) {
	if f.PutFunc != nil {
		return f.PutFunc(ctx, kind, originalName, r)
	}
	path := "/uploads/" + kind + "/" + originalName
	f.puts = append(f.puts, path)
	return path, nil
}

func (f *fakeAttachmentStore) Remove(ctx context.Context, relativePath string) error {
	if f.RemoveFunc != nil {
		return f.RemoveFunc(ctx, relativePath)
	}
	f.removes = append(f.removes, relativePath)
	return nil
}

// ------------------------
// Test environment
// ------------------------

// testEnv wires a full router over fakes, so tests exercise routing,
// middleware and handlers together.
type testEnv struct {
	router      *chi.Mux
	tokens      *auth.Service
	members     *fakeMemberStore
	tasks       *fakeTaskStore
	articles    *fakeArticleStore
	robots      *fakeRobotStore
	attachments *fakeAttachmentStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:      auth.NewService("test-secret"),
		members:     newFakeMemberStore(),
		tasks:       newFakeTaskStore(),
		articles:    newFakeArticleStore(),
		robots:      newFakeRobotStore(),
		attachments: newFakeAttachmentStore(),
	}

	db := database.NewWithStores(env.members, env.tasks, env.articles, env.robots)
	env.router = newRouter(db, env.tokens, env.attachments,
		withConfig(config.Config{}),
		withStartupTime(time.Now()),
	)
	return env
}

// seedMember plants a member directly in the fake store and returns it
// with a valid bearer token.
func (env *testEnv) seedMember(t *testing.T, email string, level models.PrivilegeLevel) (*models.Member, string) {
	t.Helper()

	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)

	member := &models.Member{
		Name:           "Test Member",
		Email:          email,
		Password:       hash,
		IsActive:       true,
		PrivilegeLevel: level,
	}
	require.NoError(t, env.members.Create(context.Background(), member))

	token, err := env.tokens.IssueToken(member)
	require.NoError(t, err)
	return member, "Bearer " + token
}

// do runs a request through the router and returns the recorder.
func (env *testEnv) do(method, target, bearer string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// doJSON marshals body and runs the request.
func (env *testEnv) doJSON(t *testing.T, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	return env.do(method, target, bearer, reader)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
