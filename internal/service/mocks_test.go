package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chordbase/chordbase-api/internal/constants"
	"github.com/chordbase/chordbase-api/internal/models"
)

// mockVariationRepository implements repository.ChordVariationRepository
// for testing.
type mockVariationRepository struct {
	mu         sync.RWMutex
	byName     map[string]*models.ChordVariation
	nextID     int
	getErr     error
	createErr  error
	createdLog []string
}

func newMockVariationRepository() *mockVariationRepository {
	return &mockVariationRepository{byName: make(map[string]*models.ChordVariation)}
}

func (m *mockVariationRepository) Create(ctx context.Context, v *models.ChordVariation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byName[v.ChordName]; exists {
		return fmt.Errorf("UNIQUE constraint failed: chord_variations.chord_name")
	}
	m.nextID++
	v.ID = fmt.Sprintf("var_%d", m.nextID)
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	copied := *v
	m.byName[v.ChordName] = &copied
	m.createdLog = append(m.createdLog, v.ChordName)
	return nil
}

func (m *mockVariationRepository) GetByName(ctx context.Context, chordName string) (*models.ChordVariation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if v, ok := m.byName[chordName]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, nil
}

func (m *mockVariationRepository) ListAll(ctx context.Context) ([]*models.ChordVariation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.ChordVariation
	for _, v := range m.byName {
		copied := *v
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ChordName < result[j].ChordName })
	return result, nil
}

// mockPositionRepository implements repository.ChordPositionRepository
// for testing.
type mockPositionRepository struct {
	mu         sync.RWMutex
	byFullName map[string]*models.ChordPosition
	nextID     int
	getErr     error
	createErr  error
}

func newMockPositionRepository() *mockPositionRepository {
	return &mockPositionRepository{byFullName: make(map[string]*models.ChordPosition)}
}

func (m *mockPositionRepository) Create(ctx context.Context, p *models.ChordPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byFullName[p.FullName]; exists {
		return fmt.Errorf("UNIQUE constraint failed: chord_positions.chord_position_full_name")
	}
	m.nextID++
	p.ID = fmt.Sprintf("pos_%d", m.nextID)
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	copied := *p
	m.byFullName[p.FullName] = &copied
	return nil
}

func (m *mockPositionRepository) GetByNameAndFret(ctx context.Context, chordName, fretPosition string) (*models.ChordPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.byFullName[models.PositionFullName(chordName, fretPosition)]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPositionRepository) GetByFullName(ctx context.Context, fullName string) (*models.ChordPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.byFullName[fullName]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPositionRepository) ListAll(ctx context.Context) ([]*models.ChordPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.ChordPosition
	for _, p := range m.byFullName {
		copied := *p
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockPositionRepository) ListByVariationID(ctx context.Context, variationID string) ([]*models.ChordPosition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*models.ChordPosition
	for _, p := range m.byFullName {
		if p.ChordVariationID == variationID {
			copied := *p
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// mockProfileRepository implements repository.ProfileRepository for testing.
type mockProfileRepository struct {
	mu       sync.RWMutex
	byID     map[string]*models.UserProfile
	getErr   error
	resetErr error
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{byID: make(map[string]*models.UserProfile)}
}

func (m *mockProfileRepository) Create(ctx context.Context, p *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[p.ID]; exists {
		return fmt.Errorf("UNIQUE constraint failed: user_profiles.id")
	}
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = constants.TierFreebird
	}
	if p.SubscriptionStatus == "" {
		p.SubscriptionStatus = models.SubscriptionStatusActive
	}
	p.LastSearchReset = time.Now()
	copied := *p
	m.byID[p.ID] = &copied
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.byID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *mockProfileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.byID {
		if p.StripeCustomerID == customerID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockProfileRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *mockProfileRepository) UpdateSubscription(ctx context.Context, id, tier, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		p.SubscriptionTier = tier
		p.SubscriptionStatus = status
	}
	return nil
}

func (m *mockProfileRepository) SetStripeCustomerID(ctx context.Context, id, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		p.StripeCustomerID = customerID
	}
	return nil
}

func (m *mockProfileRepository) IncrementSearchUsage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		p.DailySearchesUsed++
	}
	return nil
}

func (m *mockProfileRepository) ResetDailySearches(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetErr != nil {
		return 0, m.resetErr
	}
	now := time.Now()
	var count int64
	for _, p := range m.byID {
		if p.NeedsDailyReset(now) {
			p.DailySearchesUsed = 0
			p.LastSearchReset = now
			count++
		}
	}
	return count, nil
}

// mockSettingsRepository implements repository.SettingsRepository for testing.
type mockSettingsRepository struct {
	mu     sync.RWMutex
	byKey  map[string]string
	getErr error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{byKey: make(map[string]string)}
}

func (m *mockSettingsRepository) GetSetting(ctx context.Context, key string) (*models.AppSetting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if value, ok := m.byKey[key]; ok {
		return &models.AppSetting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
	}
	return nil, nil
}

func (m *mockSettingsRepository) UpsertSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byKey[key] = value
	return nil
}
