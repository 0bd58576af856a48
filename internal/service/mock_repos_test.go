package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Diwak4r/ERP-System/config"
	"github.com/Diwak4r/ERP-System/internal/model"
	"github.com/Diwak4r/ERP-System/internal/production"
	"github.com/Diwak4r/ERP-System/internal/repository"
	pkgerrors "github.com/Diwak4r/ERP-System/pkg/errors"
)

// ── Fixtures ──

const (
	adminID      = "44444444-4444-4444-4444-000000000001"
	supervisorID = "44444444-4444-4444-4444-000000000002"
	otherSupID   = "44444444-4444-4444-4444-000000000003"
	viewerID     = "44444444-4444-4444-4444-000000000004"

	sectionA = "33333333-3333-3333-3333-000000000001"
	sectionB = "33333333-3333-3333-3333-000000000002"

	workerAlice = "11111111-1111-1111-1111-000000000001"
	workerBob   = "11111111-1111-1111-1111-000000000002"
	workerGone  = "11111111-1111-1111-1111-000000000003" // inactive

	itemWidget = "22222222-2222-2222-2222-000000000001"
	itemBolt   = "22222222-2222-2222-2222-000000000002"
	itemOld    = "22222222-2222-2222-2222-000000000003" // inactive
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	d, err := production.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

var (
	admin      = production.Identity{UserID: adminID, Role: production.RoleAdmin}
	supervisor = production.Identity{UserID: supervisorID, Role: production.RoleSupervisor}
	otherSup   = production.Identity{UserID: otherSupID, Role: production.RoleSupervisor}
	viewer     = production.Identity{UserID: viewerID, Role: production.RoleViewer}
)

func testProductionConfig() *config.ProductionConfig {
	return &config.ProductionConfig{
		Timezone:            "UTC",
		MaxBatchRows:        5,
		HistoryDays:         7,
		OpenRuleHorizonDays: 30,
	}
}

// mockRepos wires every mock repository over shared in-memory state.
type mockRepos struct {
	users    *mockUserRepo
	sections *mockSectionRepo
	workers  *mockWorkerRepo
	items    *mockItemRepo
	rules    *mockTargetRuleRepo
	entries  *mockEntryRepo
}

func newMockRepos() *mockRepos {
	m := &mockRepos{
		users:   newMockUserRepo(),
		workers: &mockWorkerRepo{workers: make(map[string]*model.Worker)},
		items:   &mockItemRepo{items: make(map[string]*model.Item)},
		rules:   &mockTargetRuleRepo{rules: make(map[string]*model.TargetRule)},
	}
	m.entries = &mockEntryRepo{repos: m}
	m.sections = &mockSectionRepo{
		sections:    make(map[string]*model.Section),
		supervisors: make(map[string][]string),
		entries:     m.entries,
	}
	m.workers.entries = m.entries
	m.items.entries = m.entries
	return m
}

func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		User:            m.users,
		Section:         m.sections,
		Worker:          m.workers,
		Item:            m.items,
		TargetRule:      m.rules,
		ProductionEntry: m.entries,
		Report:          &mockReportRepo{repos: m},
	}
}

// seed loads the standard fixture set.
func (m *mockRepos) seed() {
	for _, u := range []*model.User{
		{UserID: adminID, Username: "admin", Name: "Admin", Role: production.RoleAdmin, IsActive: true},
		{UserID: supervisorID, Username: "sup", Name: "Supervisor", Role: production.RoleSupervisor, IsActive: true},
		{UserID: otherSupID, Username: "sup2", Name: "Other Supervisor", Role: production.RoleSupervisor, IsActive: true},
		{UserID: viewerID, Username: "viewer", Name: "Viewer", Role: production.RoleViewer, IsActive: true},
	} {
		m.users.users[u.UserID] = u
	}

	m.sections.sections[sectionA] = &model.Section{SectionID: sectionA, Name: "Assembly", Code: "ASM", IsActive: true}
	m.sections.sections[sectionB] = &model.Section{SectionID: sectionB, Name: "Packing", Code: "PCK", IsActive: true}
	m.sections.supervisors[sectionA] = []string{supervisorID}
	m.sections.supervisors[sectionB] = []string{otherSupID}

	m.workers.workers[workerAlice] = &model.Worker{WorkerID: workerAlice, Name: "Alice", EmployeeCode: "E001", IsActive: true}
	m.workers.workers[workerBob] = &model.Worker{WorkerID: workerBob, Name: "Bob", EmployeeCode: "E002", IsActive: true, IsDailyWage: true}
	m.workers.workers[workerGone] = &model.Worker{WorkerID: workerGone, Name: "Gone", EmployeeCode: "E003", IsActive: false}

	m.items.items[itemWidget] = &model.Item{ItemID: itemWidget, Name: "Widget", SKU: "W-1", Unit: model.UnitPCS, IsActive: true}
	m.items.items[itemBolt] = &model.Item{ItemID: itemBolt, Name: "Bolt", SKU: "B-1", Unit: model.UnitKG, IsActive: true}
	m.items.items[itemOld] = &model.Item{ItemID: itemOld, Name: "Old", SKU: "O-1", Unit: model.UnitOther, IsActive: false}
}

func (m *mockRepos) addRule(id, sectionID, itemID, target, shift, start string, end *time.Time) *model.TargetRule {
	rule := &model.TargetRule{
		TargetRuleID: id,
		SectionID:    sectionID,
		ItemID:       itemID,
		TargetQty:    dec(target),
		ShiftHours:   dec(shift),
		StartDate:    date(start),
		EndDate:      end,
	}
	rule.Version = 1
	m.rules.seq++
	rule.CreatedAt = fixedNow.Add(time.Duration(m.rules.seq) * time.Second)
	m.rules.rules[id] = rule
	return rule
}

func newTestLogger() *zap.Logger { return zap.NewNop() }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	user.CreatedAt = fixedNow
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserListFilter) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(u.Username, filter.Keyword) && !strings.Contains(u.Name, filter.Keyword) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })

	total := int64(len(all))
	if filter.Offset > len(all) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

// ── Mock SectionRepository ──

type mockSectionRepo struct {
	sections    map[string]*model.Section
	supervisors map[string][]string
	entries     *mockEntryRepo
}

func (m *mockSectionRepo) withSupervisors(s *model.Section) *model.Section {
	cp := *s
	cp.Supervisors = nil
	for _, uid := range m.supervisors[s.SectionID] {
		cp.Supervisors = append(cp.Supervisors, model.SectionSupervisor{SectionID: s.SectionID, UserID: uid})
	}
	return &cp
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.Section) error {
	for _, s := range m.sections {
		if s.Code == section.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if section.SectionID == "" {
		section.SectionID = "section-" + section.Code
	}
	section.CreatedAt = fixedNow
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		return m.withSupervisors(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) List(_ context.Context, includeInactive bool) ([]model.Section, error) {
	var result []model.Section
	for _, s := range m.sections {
		if !includeInactive && !s.IsActive {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSectionRepo) ListBySupervisor(_ context.Context, userID string) ([]model.Section, error) {
	var result []model.Section
	for sid, uids := range m.supervisors {
		s, ok := m.sections[sid]
		if !ok || !s.IsActive {
			continue
		}
		for _, uid := range uids {
			if uid == userID {
				result = append(result, *s)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.Section) error {
	for id, s := range m.sections {
		if id != section.SectionID && s.Code == section.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *section
	cp.Supervisors = nil
	m.sections[section.SectionID] = &cp
	return nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string) error {
	delete(m.sections, id)
	delete(m.supervisors, id)
	return nil
}

func (m *mockSectionRepo) SupervisorIDs(_ context.Context, sectionID string) ([]string, error) {
	return m.supervisors[sectionID], nil
}

func (m *mockSectionRepo) ReplaceSupervisors(_ context.Context, sectionID string, userIDs []string) error {
	m.supervisors[sectionID] = append([]string(nil), userIDs...)
	return nil
}

func (m *mockSectionRepo) CountEntries(_ context.Context, sectionID string) (int64, error) {
	return m.entries.count(func(e *model.ProductionEntry) bool { return e.SectionID == sectionID }), nil
}

// ── Mock WorkerRepository ──

type mockWorkerRepo struct {
	workers map[string]*model.Worker
	entries *mockEntryRepo
}

func (m *mockWorkerRepo) Create(_ context.Context, worker *model.Worker) error {
	for _, w := range m.workers {
		if w.EmployeeCode == worker.EmployeeCode {
			return gorm.ErrDuplicatedKey
		}
	}
	if worker.WorkerID == "" {
		worker.WorkerID = "worker-" + worker.EmployeeCode
	}
	worker.CreatedAt = fixedNow
	m.workers[worker.WorkerID] = worker
	return nil
}

func (m *mockWorkerRepo) GetByID(_ context.Context, id string) (*model.Worker, error) {
	if w, ok := m.workers[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) GetByIDs(_ context.Context, ids []string) ([]model.Worker, error) {
	var result []model.Worker
	for _, id := range ids {
		if w, ok := m.workers[id]; ok {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (m *mockWorkerRepo) GetByEmployeeCode(_ context.Context, code string) (*model.Worker, error) {
	for _, w := range m.workers {
		if w.EmployeeCode == code {
			return w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkerRepo) List(_ context.Context, includeInactive bool) ([]model.Worker, error) {
	var result []model.Worker
	for _, w := range m.workers {
		if !includeInactive && !w.IsActive {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockWorkerRepo) Update(_ context.Context, worker *model.Worker) error {
	for id, w := range m.workers {
		if id != worker.WorkerID && w.EmployeeCode == worker.EmployeeCode {
			return gorm.ErrDuplicatedKey
		}
	}
	m.workers[worker.WorkerID] = worker
	return nil
}

func (m *mockWorkerRepo) Delete(_ context.Context, id string) error {
	delete(m.workers, id)
	return nil
}

func (m *mockWorkerRepo) CountEntries(_ context.Context, workerID string) (int64, error) {
	return m.entries.count(func(e *model.ProductionEntry) bool { return e.WorkerID == workerID }), nil
}

// ── Mock ItemRepository ──

type mockItemRepo struct {
	items   map[string]*model.Item
	entries *mockEntryRepo
}

func (m *mockItemRepo) Create(_ context.Context, item *model.Item) error {
	for _, it := range m.items {
		if it.SKU == item.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	if item.ItemID == "" {
		item.ItemID = "item-" + item.SKU
	}
	item.CreatedAt = fixedNow
	m.items[item.ItemID] = item
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id string) (*model.Item, error) {
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockItemRepo) GetByIDs(_ context.Context, ids []string) ([]model.Item, error) {
	var result []model.Item
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			result = append(result, *it)
		}
	}
	return result, nil
}

func (m *mockItemRepo) List(_ context.Context, includeInactive bool) ([]model.Item, error) {
	var result []model.Item
	for _, it := range m.items {
		if !includeInactive && !it.IsActive {
			continue
		}
		result = append(result, *it)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockItemRepo) Update(_ context.Context, item *model.Item) error {
	for id, it := range m.items {
		if id != item.ItemID && it.SKU == item.SKU {
			return gorm.ErrDuplicatedKey
		}
	}
	m.items[item.ItemID] = item
	return nil
}

func (m *mockItemRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockItemRepo) CountEntries(_ context.Context, itemID string) (int64, error) {
	return m.entries.count(func(e *model.ProductionEntry) bool { return e.ItemID == itemID }), nil
}

// ── Mock TargetRuleRepository ──

type mockTargetRuleRepo struct {
	rules map[string]*model.TargetRule
	seq   int
}

func sameEnd(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (m *mockTargetRuleRepo) Create(_ context.Context, rule *model.TargetRule) error {
	for _, r := range m.rules {
		if r.SectionID == rule.SectionID && r.ItemID == rule.ItemID &&
			r.StartDate.Equal(rule.StartDate) && sameEnd(r.EndDate, rule.EndDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if rule.TargetRuleID == "" {
		rule.TargetRuleID = fmt.Sprintf("rule-%d", m.seq)
	}
	rule.CreatedAt = fixedNow.Add(time.Duration(m.seq) * time.Second)
	cp := *rule
	cp.Section, cp.Item = nil, nil
	m.rules[rule.TargetRuleID] = &cp
	return nil
}

func (m *mockTargetRuleRepo) GetByID(_ context.Context, id string) (*model.TargetRule, error) {
	if r, ok := m.rules[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTargetRuleRepo) List(_ context.Context, filter repository.TargetRuleFilter) ([]model.TargetRule, error) {
	var result []model.TargetRule
	for _, r := range m.rules {
		if filter.SectionID != "" && r.SectionID != filter.SectionID {
			continue
		}
		if filter.ItemID != "" && r.ItemID != filter.ItemID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListCovering mirrors ORDER BY start_date DESC, end_date DESC NULLS FIRST, created_at DESC
func (m *mockTargetRuleRepo) ListCovering(_ context.Context, sectionID, itemID string, day time.Time) ([]model.TargetRule, error) {
	var result []model.TargetRule
	for _, r := range m.rules {
		if r.SectionID == sectionID && r.ItemID == itemID && r.Window().Covers(day) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		if !sameEnd(a.EndDate, b.EndDate) {
			if a.EndDate == nil {
				return true
			}
			if b.EndDate == nil {
				return false
			}
			return a.EndDate.After(*b.EndDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return result, nil
}

func (m *mockTargetRuleRepo) ListOverlapping(_ context.Context, sectionID, itemID string, w production.Window, excludeID string) ([]model.TargetRule, error) {
	var result []model.TargetRule
	for id, r := range m.rules {
		if id == excludeID || r.SectionID != sectionID || r.ItemID != itemID {
			continue
		}
		if r.Window().Overlaps(w) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockTargetRuleRepo) Update(_ context.Context, rule *model.TargetRule) error {
	stored, ok := m.rules[rule.TargetRuleID]
	if !ok || stored.Version != rule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for id, r := range m.rules {
		if id != rule.TargetRuleID && r.SectionID == rule.SectionID && r.ItemID == rule.ItemID &&
			r.StartDate.Equal(rule.StartDate) && sameEnd(r.EndDate, rule.EndDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	rule.Version++
	cp := *rule
	cp.Section, cp.Item = nil, nil
	m.rules[rule.TargetRuleID] = &cp
	return nil
}

func (m *mockTargetRuleRepo) Delete(_ context.Context, id string) error {
	delete(m.rules, id)
	return nil
}

// ── Mock ProductionEntryRepository ──

type mockEntryRepo struct {
	repos   *mockRepos
	entries []*model.ProductionEntry
	// failOn makes Create return this error for the given worker id
	failOn map[string]error
}

func (m *mockEntryRepo) count(match func(*model.ProductionEntry) bool) int64 {
	var n int64
	for _, e := range m.entries {
		if match(e) {
			n++
		}
	}
	return n
}

// Create behaves like gorm: hooks run, then the unique slot is enforced.
func (m *mockEntryRepo) Create(_ context.Context, entry *model.ProductionEntry) error {
	if err, ok := m.failOn[entry.WorkerID]; ok {
		return err
	}
	if err := entry.BeforeSave(nil); err != nil {
		return err
	}
	for _, e := range m.entries {
		if e.EntryDate.Equal(entry.EntryDate) && e.SectionID == entry.SectionID &&
			e.WorkerID == entry.WorkerID && e.ItemID == entry.ItemID {
			return gorm.ErrDuplicatedKey
		}
	}
	entry.ProductionEntryID = fmt.Sprintf("entry-%d", len(m.entries)+1)
	entry.CreatedAt = fixedNow
	cp := *entry
	cp.Section, cp.Worker, cp.Item = nil, nil, nil
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockEntryRepo) hydrate(e *model.ProductionEntry) model.ProductionEntry {
	cp := *e
	cp.Section = m.repos.sections.sections[e.SectionID]
	cp.Worker = m.repos.workers.workers[e.WorkerID]
	cp.Item = m.repos.items.items[e.ItemID]
	return cp
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.ProductionEntry, error) {
	for _, e := range m.entries {
		if e.ProductionEntryID == id {
			cp := m.hydrate(e)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListByDate(_ context.Context, day time.Time, sectionID string) ([]model.ProductionEntry, error) {
	var result []model.ProductionEntry
	for _, e := range m.entries {
		if !e.EntryDate.Equal(day) || (sectionID != "" && e.SectionID != sectionID) {
			continue
		}
		result = append(result, m.hydrate(e))
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Section.Name != result[j].Section.Name {
			return result[i].Section.Name < result[j].Section.Name
		}
		return result[i].Worker.Name < result[j].Worker.Name
	})
	return result, nil
}

// ── Mock ReportRepository ──

// mockReportRepo computes the grouped reports in memory from mockEntryRepo.
type mockReportRepo struct {
	repos *mockRepos
}

func (m *mockReportRepo) scope(day time.Time, sectionID string) []*model.ProductionEntry {
	var out []*model.ProductionEntry
	for _, e := range m.repos.entries.entries {
		if e.EntryDate.Equal(day) && (sectionID == "" || e.SectionID == sectionID) {
			out = append(out, e)
		}
	}
	return out
}

func (m *mockReportRepo) ItemTotals(_ context.Context, day time.Time, sectionID string) ([]repository.ItemTotal, error) {
	byID := map[string]*repository.ItemTotal{}
	for _, e := range m.scope(day, sectionID) {
		t, ok := byID[e.ItemID]
		if !ok {
			it := m.repos.items.items[e.ItemID]
			t = &repository.ItemTotal{ItemID: e.ItemID, ItemName: it.Name, Unit: it.Unit}
			byID[e.ItemID] = t
		}
		t.TotalActual = t.TotalActual.Add(e.ActualQty)
	}
	var rows []repository.ItemTotal
	for _, t := range byID {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemName < rows[j].ItemName })
	return rows, nil
}

func (m *mockReportRepo) WorkerTotals(_ context.Context, day time.Time, sectionID string) ([]repository.WorkerTotal, error) {
	byID := map[string]*repository.WorkerTotal{}
	for _, e := range m.scope(day, sectionID) {
		t, ok := byID[e.WorkerID]
		if !ok {
			t = &repository.WorkerTotal{WorkerID: e.WorkerID, WorkerName: m.repos.workers.workers[e.WorkerID].Name}
			byID[e.WorkerID] = t
		}
		t.TotalActual = t.TotalActual.Add(e.ActualQty)
	}
	var rows []repository.WorkerTotal
	for _, t := range byID {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].WorkerName < rows[j].WorkerName })
	return rows, nil
}

func (m *mockReportRepo) DistinctWorkers(_ context.Context, day time.Time, sectionID string) (int64, error) {
	seen := map[string]bool{}
	for _, e := range m.scope(day, sectionID) {
		seen[e.WorkerID] = true
	}
	return int64(len(seen)), nil
}

func (m *mockReportRepo) ItemAggregates(_ context.Context, day time.Time, sectionID string) ([]repository.ItemAggregate, error) {
	byID := map[string]*repository.ItemAggregate{}
	for _, e := range m.scope(day, sectionID) {
		a, ok := byID[e.ItemID]
		if !ok {
			a = &repository.ItemAggregate{ItemID: e.ItemID, ItemName: m.repos.items.items[e.ItemID].Name}
			byID[e.ItemID] = a
		}
		a.TotalTarget = a.TotalTarget.Add(e.TargetQty)
		a.TotalActual = a.TotalActual.Add(e.ActualQty)
		a.EntryCount++
		if e.TargetMet {
			a.HitCount++
		}
	}
	var rows []repository.ItemAggregate
	for _, a := range byID {
		rows = append(rows, *a)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemName < rows[j].ItemName })
	return rows, nil
}

func (m *mockReportRepo) WorkerDayTotals(_ context.Context, workerID, sectionID string, start, end time.Time) ([]repository.DayTotal, error) {
	byDay := map[time.Time]*repository.DayTotal{}
	for _, e := range m.repos.entries.entries {
		if e.WorkerID != workerID || e.SectionID != sectionID || e.EntryDate.Before(start) || e.EntryDate.After(end) {
			continue
		}
		d, ok := byDay[e.EntryDate]
		if !ok {
			d = &repository.DayTotal{EntryDate: e.EntryDate}
			byDay[e.EntryDate] = d
		}
		d.TotalTarget = d.TotalTarget.Add(e.TargetQty)
		d.TotalActual = d.TotalActual.Add(e.ActualQty)
	}
	var rows []repository.DayTotal
	for _, d := range byDay {
		rows = append(rows, *d)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EntryDate.Before(rows[j].EntryDate) })
	return rows, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}
