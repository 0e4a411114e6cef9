package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

// ── Mock StationRepository ──

type mockStationRepo struct {
	stations map[uint]*model.Station
	nextID   uint
}

func newMockStationRepo() *mockStationRepo {
	return &mockStationRepo{stations: make(map[uint]*model.Station)}
}

func (m *mockStationRepo) Create(_ context.Context, st *model.Station) error {
	m.nextID++
	st.ID = m.nextID
	m.stations[st.ID] = st
	return nil
}

func (m *mockStationRepo) GetByID(_ context.Context, id uint) (*model.Station, error) {
	if st, ok := m.stations[id]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStationRepo) List(_ context.Context) ([]model.Station, error) {
	var result []model.Station
	for _, st := range m.stations {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockStationRepo) Update(_ context.Context, st *model.Station) error {
	cp := *st
	m.stations[st.ID] = &cp
	return nil
}

func (m *mockStationRepo) Delete(_ context.Context, id uint) error {
	delete(m.stations, id)
	return nil
}

// ── Mock SiteCollectionRepository ──

type mockSiteCollectionRepo struct {
	sites  map[uint]*model.SiteCollection
	nextID uint
}

func newMockSiteCollectionRepo() *mockSiteCollectionRepo {
	return &mockSiteCollectionRepo{sites: make(map[uint]*model.SiteCollection)}
}

func (m *mockSiteCollectionRepo) Create(_ context.Context, sc *model.SiteCollection) error {
	m.nextID++
	sc.ID = m.nextID
	m.sites[sc.ID] = sc
	return nil
}

func (m *mockSiteCollectionRepo) GetByID(_ context.Context, id uint) (*model.SiteCollection, error) {
	if sc, ok := m.sites[id]; ok {
		cp := *sc
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSiteCollectionRepo) List(_ context.Context) ([]model.SiteCollection, error) {
	var result []model.SiteCollection
	for _, sc := range m.sites {
		result = append(result, *sc)
	}
	return result, nil
}

func (m *mockSiteCollectionRepo) ListByStation(_ context.Context, cwsID uint) ([]model.SiteCollection, error) {
	var result []model.SiteCollection
	for _, sc := range m.sites {
		if sc.CWSID == cwsID {
			result = append(result, *sc)
		}
	}
	return result, nil
}

func (m *mockSiteCollectionRepo) Update(_ context.Context, sc *model.SiteCollection) error {
	cp := *sc
	m.sites[sc.ID] = &cp
	return nil
}

func (m *mockSiteCollectionRepo) Delete(_ context.Context, id uint) error {
	delete(m.sites, id)
	return nil
}

// ── Mock PurchaseRepository ──

type mockPurchaseRepo struct {
	purchases map[uint]*model.Purchase
	nextID    uint
}

func newMockPurchaseRepo() *mockPurchaseRepo {
	return &mockPurchaseRepo{purchases: make(map[uint]*model.Purchase)}
}

func (m *mockPurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.purchases[p.ID] = &cp
	return nil
}

func (m *mockPurchaseRepo) GetByID(_ context.Context, id uint) (*model.Purchase, error) {
	if p, ok := m.purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPurchaseRepo) Update(_ context.Context, p *model.Purchase) error {
	cp := *p
	m.purchases[p.ID] = &cp
	return nil
}

func (m *mockPurchaseRepo) Delete(_ context.Context, id uint) error {
	delete(m.purchases, id)
	return nil
}

func (m *mockPurchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	return m.ListBetween(ctx, nil, nil)
}

func (m *mockPurchaseRepo) ListByStation(_ context.Context, cwsID uint) ([]model.Purchase, error) {
	var result []model.Purchase
	for _, p := range m.sorted() {
		if p.CWSID == cwsID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPurchaseRepo) ListBetween(_ context.Context, start, end *time.Time) ([]model.Purchase, error) {
	var result []model.Purchase
	for _, p := range m.sorted() {
		if start != nil && p.PurchaseDate.Before(*start) {
			continue
		}
		if end != nil && !p.PurchaseDate.Before(*end) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPurchaseRepo) FindForDay(_ context.Context, key repository.PurchaseDayKey) (*model.Purchase, error) {
	for _, p := range m.purchases {
		if p.CWSID != key.CWSID || p.Grade != key.Grade || p.DeliveryType != key.DeliveryType {
			continue
		}
		if p.PurchaseDate.Before(key.DayStart) || !p.PurchaseDate.Before(key.DayEnd) {
			continue
		}
		if key.DeliveryType == model.DeliverySiteCollection &&
			(p.SiteCollectionID == nil || key.SiteCollectionID == nil || *p.SiteCollectionID != *key.SiteCollectionID) {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPurchaseRepo) CountBySiteCollection(_ context.Context, siteCollectionID uint) (int64, error) {
	var n int64
	for _, p := range m.purchases {
		if p.SiteCollectionID != nil && *p.SiteCollectionID == siteCollectionID {
			n++
		}
	}
	return n, nil
}

func (m *mockPurchaseRepo) ExistsForBatch(_ context.Context, batchNo, grade string) (bool, error) {
	for _, p := range m.purchases {
		if p.BatchNo == batchNo && p.Grade == grade {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPurchaseRepo) sorted() []model.Purchase {
	var all []model.Purchase
	for _, p := range m.purchases {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PurchaseDate.Equal(all[j].PurchaseDate) {
			return all[i].PurchaseDate.After(all[j].PurchaseDate)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

// ── Mock ProcessingRepository ──

type mockProcessingRepo struct {
	processings map[uint]*model.Processing
	nextID      uint
	// bagging offs are attached by the report tests
	baggingOffs *mockBaggingOffRepo
}

func newMockProcessingRepo() *mockProcessingRepo {
	return &mockProcessingRepo{processings: make(map[uint]*model.Processing)}
}

func (m *mockProcessingRepo) Create(_ context.Context, p *model.Processing) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.processings[p.ID] = &cp
	return nil
}

func (m *mockProcessingRepo) GetByID(_ context.Context, id uint) (*model.Processing, error) {
	if p, ok := m.processings[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProcessingRepo) GetByBatchNo(_ context.Context, batchNo string) (*model.Processing, error) {
	for _, p := range m.processings {
		if p.BatchNo == batchNo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProcessingRepo) ExistsInStatus(_ context.Context, batchNo string, statuses ...model.ProcessingStatus) (bool, error) {
	for _, p := range m.processings {
		if p.BatchNo != batchNo {
			continue
		}
		if len(statuses) == 0 {
			return true, nil
		}
		for _, st := range statuses {
			if p.Status == st {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockProcessingRepo) Update(_ context.Context, p *model.Processing) error {
	cp := *p
	m.processings[p.ID] = &cp
	return nil
}

func (m *mockProcessingRepo) UpdateStatus(_ context.Context, id uint, status model.ProcessingStatus, endDate *time.Time) error {
	p, ok := m.processings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	if endDate != nil {
		e := *endDate
		p.EndDate = &e
	}
	return nil
}

func (m *mockProcessingRepo) List(_ context.Context, f repository.ProcessingFilter) ([]model.Processing, error) {
	var result []model.Processing
	for _, p := range m.sorted() {
		if f.CWSID != nil && p.CWSID != *f.CWSID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.ProcessingType != "" && p.ProcessingType != f.ProcessingType {
			continue
		}
		if f.EndFrom != nil && (p.EndDate == nil || p.EndDate.Before(*f.EndFrom)) {
			continue
		}
		if f.EndTo != nil && (p.EndDate == nil || p.EndDate.After(*f.EndTo)) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProcessingRepo) ListWithBaggingOffs(ctx context.Context, f repository.ProcessingFilter) ([]model.Processing, error) {
	list, _ := m.List(ctx, f)
	if m.baggingOffs == nil {
		return list, nil
	}
	for i := range list {
		for _, b := range m.baggingOffs.rows {
			if b.ProcessingID == list[i].ID {
				list[i].BaggingOffs = append(list[i].BaggingOffs, *b)
			}
		}
	}
	return list, nil
}

func (m *mockProcessingRepo) ListBatchNos(_ context.Context) ([]string, error) {
	var result []string
	for _, p := range m.sorted() {
		result = append(result, p.BatchNo)
	}
	return result, nil
}

func (m *mockProcessingRepo) Stats(_ context.Context, cwsID uint) ([]repository.ProcessingStat, error) {
	index := map[string]*repository.ProcessingStat{}
	var keys []string
	for _, p := range m.sorted() {
		if p.CWSID != cwsID {
			continue
		}
		k := p.ProcessingType + "|" + string(p.Status)
		st, ok := index[k]
		if !ok {
			st = &repository.ProcessingStat{ProcessingType: p.ProcessingType, Status: string(p.Status)}
			index[k] = st
			keys = append(keys, k)
		}
		st.TotalKgs += p.TotalKgs
		st.Count++
	}
	sort.Strings(keys)
	var result []repository.ProcessingStat
	for _, k := range keys {
		result = append(result, *index[k])
	}
	return result, nil
}

func (m *mockProcessingRepo) sorted() []model.Processing {
	var all []model.Processing
	for _, p := range m.processings {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].BatchNo < all[j].BatchNo })
	return all
}

// ── Mock BaggingOffRepository ──

type mockBaggingOffRepo struct {
	rows   map[uint]*model.BaggingOff
	nextID uint
}

func newMockBaggingOffRepo() *mockBaggingOffRepo {
	return &mockBaggingOffRepo{rows: make(map[uint]*model.BaggingOff)}
}

func (m *mockBaggingOffRepo) Create(_ context.Context, b *model.BaggingOff) error {
	m.nextID++
	b.ID = m.nextID
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *mockBaggingOffRepo) GetByID(_ context.Context, id uint) (*model.BaggingOff, error) {
	if b, ok := m.rows[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBaggingOffRepo) FindRow(_ context.Context, batchNo, processingType string, processingID uint) (*model.BaggingOff, error) {
	for _, b := range m.rows {
		if b.BatchNo == batchNo && b.ProcessingType == processingType && b.ProcessingID == processingID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBaggingOffRepo) Update(_ context.Context, b *model.BaggingOff) error {
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *mockBaggingOffRepo) Delete(_ context.Context, id uint) error {
	delete(m.rows, id)
	return nil
}

func (m *mockBaggingOffRepo) List(_ context.Context) ([]model.BaggingOff, error) {
	return m.filter(func(*model.BaggingOff) bool { return true }), nil
}

func (m *mockBaggingOffRepo) ListByBatch(_ context.Context, batchNo string) ([]model.BaggingOff, error) {
	return m.filter(func(b *model.BaggingOff) bool { return b.BatchNo == batchNo }), nil
}

func (m *mockBaggingOffRepo) ListCompletedByStation(_ context.Context, _ uint) ([]model.BaggingOff, error) {
	return m.filter(func(b *model.BaggingOff) bool { return b.Status == string(model.StatusCompleted) }), nil
}

func (m *mockBaggingOffRepo) CountByBatch(_ context.Context, batchNo string) (int64, error) {
	return int64(len(m.filter(func(b *model.BaggingOff) bool { return b.BatchNo == batchNo }))), nil
}

func (m *mockBaggingOffRepo) filter(keep func(*model.BaggingOff) bool) []model.BaggingOff {
	var result []model.BaggingOff
	for _, b := range m.rows {
		if keep(b) {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ── Mock WetTransferRepository ──

type mockWetTransferRepo struct {
	transfers map[uint]*model.WetTransfer
	nextID    uint
}

func newMockWetTransferRepo() *mockWetTransferRepo {
	return &mockWetTransferRepo{transfers: make(map[uint]*model.WetTransfer)}
}

func (m *mockWetTransferRepo) Create(_ context.Context, w *model.WetTransfer) error {
	m.nextID++
	w.ID = m.nextID
	cp := *w
	m.transfers[w.ID] = &cp
	return nil
}

func (m *mockWetTransferRepo) GetByID(_ context.Context, id uint) (*model.WetTransfer, error) {
	if w, ok := m.transfers[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWetTransferRepo) Update(_ context.Context, w *model.WetTransfer) error {
	cp := *w
	m.transfers[w.ID] = &cp
	return nil
}

func (m *mockWetTransferRepo) Delete(_ context.Context, id uint) error {
	delete(m.transfers, id)
	return nil
}

func (m *mockWetTransferRepo) List(_ context.Context) ([]model.WetTransfer, error) {
	return m.filter(func(*model.WetTransfer) bool { return true }, 0), nil
}

func (m *mockWetTransferRepo) ListBySource(_ context.Context, cwsID uint) ([]model.WetTransfer, error) {
	return m.filter(func(w *model.WetTransfer) bool { return w.SourceCWSID == cwsID }, 0), nil
}

func (m *mockWetTransferRepo) ListByDestination(_ context.Context, cwsID uint) ([]model.WetTransfer, error) {
	return m.filter(func(w *model.WetTransfer) bool { return w.DestinationCWSID == cwsID }, 0), nil
}

func (m *mockWetTransferRepo) ListByBatchNo(_ context.Context, batchNo string) ([]model.WetTransfer, error) {
	return m.filter(func(w *model.WetTransfer) bool { return w.BatchNo == batchNo }, 0), nil
}

func (m *mockWetTransferRepo) SearchByBatch(_ context.Context, fragment string) ([]model.WetTransfer, error) {
	needle := strings.ToLower(fragment)
	return m.filter(func(w *model.WetTransfer) bool {
		return strings.Contains(strings.ToLower(w.BatchNo), needle)
	}, 0), nil
}

func (m *mockWetTransferRepo) ListByStation(_ context.Context, cwsID uint, limit int) ([]model.WetTransfer, error) {
	return m.filter(func(w *model.WetTransfer) bool {
		return w.SourceCWSID == cwsID || w.DestinationCWSID == cwsID
	}, limit), nil
}

func (m *mockWetTransferRepo) filter(keep func(*model.WetTransfer) bool, limit int) []model.WetTransfer {
	var result []model.WetTransfer
	for _, w := range m.transfers {
		if keep(w) {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// ── Mock TransferRepository ──

type mockTransferRepo struct {
	transfers map[uint]*model.Transfer
	nextID    uint
}

func newMockTransferRepo() *mockTransferRepo {
	return &mockTransferRepo{transfers: make(map[uint]*model.Transfer)}
}

func (m *mockTransferRepo) Create(_ context.Context, t *model.Transfer) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.transfers[t.ID] = &cp
	return nil
}

func (m *mockTransferRepo) GetByID(_ context.Context, id uint) (*model.Transfer, error) {
	if t, ok := m.transfers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTransferRepo) Update(_ context.Context, t *model.Transfer) error {
	cp := *t
	m.transfers[t.ID] = &cp
	return nil
}

func (m *mockTransferRepo) List(_ context.Context) ([]model.Transfer, error) {
	return m.filter(func(*model.Transfer) bool { return true }), nil
}

func (m *mockTransferRepo) ListByBatch(_ context.Context, batchNo string) ([]model.Transfer, error) {
	return m.filter(func(t *model.Transfer) bool { return t.BatchNo == batchNo }), nil
}

func (m *mockTransferRepo) ListByStation(_ context.Context, _ uint, from, to *time.Time) ([]model.Transfer, error) {
	return m.filter(func(t *model.Transfer) bool {
		if from != nil && t.TransferDate.Before(*from) {
			return false
		}
		return to == nil || !t.TransferDate.After(*to)
	}), nil
}

func (m *mockTransferRepo) ListByBaggingOff(_ context.Context, baggingOffID uint) ([]model.Transfer, error) {
	return m.filter(func(t *model.Transfer) bool { return t.BaggingOffID == baggingOffID }), nil
}

func (m *mockTransferRepo) filter(keep func(*model.Transfer) bool) []model.Transfer {
	var result []model.Transfer
	for _, t := range m.transfers {
		if keep(t) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TransferDate.After(result[j].TransferDate) })
	return result
}

// ── Mock PricingRepository ──

type mockPricingRepo struct {
	global []*model.GlobalFees
	cws    []*model.StationPricing
	sites  []*model.SiteCollectionFees
}

func (m *mockPricingRepo) CreateGlobalFees(_ context.Context, f *model.GlobalFees) error {
	f.ID = uint(len(m.global) + 1)
	m.global = append(m.global, f)
	return nil
}

func (m *mockPricingRepo) LatestGlobalFees(_ context.Context) (*model.GlobalFees, error) {
	if len(m.global) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return m.global[len(m.global)-1], nil
}

func (m *mockPricingRepo) CreateStationPricing(_ context.Context, p *model.StationPricing) error {
	p.ID = uint(len(m.cws) + 1)
	m.cws = append(m.cws, p)
	return nil
}

func (m *mockPricingRepo) LatestStationPricing(_ context.Context, cwsID uint) (*model.StationPricing, error) {
	for i := len(m.cws) - 1; i >= 0; i-- {
		if m.cws[i].CWSID == cwsID {
			return m.cws[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPricingRepo) CreateSiteCollectionFees(_ context.Context, f *model.SiteCollectionFees) error {
	f.ID = uint(len(m.sites) + 1)
	m.sites = append(m.sites, f)
	return nil
}

func (m *mockPricingRepo) LatestSiteCollectionFees(_ context.Context, siteCollectionID uint) (*model.SiteCollectionFees, error) {
	for i := len(m.sites) - 1; i >= 0; i-- {
		if m.sites[i].SiteCollectionID == siteCollectionID {
			return m.sites[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock cache store ──

type mockStore struct {
	data    map[string][]byte
	deleted []string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrMiss
}

func (m *mockStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mockStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

// ── Mock TokenRevoker ──

type mockRevoker struct {
	revoked map[string]time.Duration
}

func newMockRevoker() *mockRevoker {
	return &mockRevoker{revoked: make(map[string]time.Duration)}
}

func (m *mockRevoker) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockRevoker) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── fixture ──

type fixture struct {
	users       *mockUserRepo
	stations    *mockStationRepo
	sites       *mockSiteCollectionRepo
	purchases   *mockPurchaseRepo
	processings *mockProcessingRepo
	baggingOffs *mockBaggingOffRepo
	wet         *mockWetTransferRepo
	transfers   *mockTransferRepo
	pricing     *mockPricingRepo
	store       *mockStore
	revoker     *mockRevoker

	repo   *repository.Repository
	cfg    *config.Config
	logger *zap.Logger
}

func newFixture() *fixture {
	f := &fixture{
		users:       newMockUserRepo(),
		stations:    newMockStationRepo(),
		sites:       newMockSiteCollectionRepo(),
		purchases:   newMockPurchaseRepo(),
		processings: newMockProcessingRepo(),
		baggingOffs: newMockBaggingOffRepo(),
		wet:         newMockWetTransferRepo(),
		transfers:   newMockTransferRepo(),
		pricing:     &mockPricingRepo{},
		store:       newMockStore(),
		revoker:     newMockRevoker(),
		logger:      zap.NewNop(),
	}
	f.processings.baggingOffs = f.baggingOffs

	f.repo = &repository.Repository{
		User:           f.users,
		Station:        f.stations,
		SiteCollection: f.sites,
		Purchase:       f.purchases,
		Processing:     f.processings,
		BaggingOff:     f.baggingOffs,
		WetTransfer:    f.wet,
		Transfer:       f.transfers,
		Pricing:        f.pricing,
	}
	f.cfg = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Cache: config.CacheConfig{TTL: time.Hour},
	}
	return f
}

func (f *fixture) cache() *cache.Cache {
	return cache.New(f.store, time.Hour, f.logger)
}

func (f *fixture) addStation(code string, speciality bool) *model.Station {
	st := &model.Station{Name: "Station " + code, Code: code, Location: "Rwanda", HasSpeciality: speciality}
	_ = f.stations.Create(context.Background(), st)
	return st
}

func (f *fixture) addProcessing(batchNo, ptype string, kgs float64, status model.ProcessingStatus, cwsID uint) *model.Processing {
	p := &model.Processing{
		BatchNo:        batchNo,
		ProcessingType: ptype,
		TotalKgs:       kgs,
		Grade:          "A",
		Status:         status,
		StartDate:      time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		CWSID:          cwsID,
	}
	_ = f.processings.Create(context.Background(), p)
	return p
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
