package interfaces

import (
	"context"

	"github.com/financialos/FinancialOS/internal/ledger/application"
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
	"github.com/financialos/FinancialOS/internal/syncdata"
)

type MockAssetService struct {
	assets       []domain.Asset
	revalued     int
	shouldFail   bool
	failValidate bool
	notFound     bool
}

func (m *MockAssetService) Assets() []domain.Asset { return m.assets }

func (m *MockAssetService) Total(assetType domain.AssetType) float64 {
	var total float64
	for _, a := range m.assets {
		if a.Type == assetType {
			total += a.Value
		}
	}
	return total
}

func (m *MockAssetService) CreateAsset(ctx context.Context, a *domain.Asset) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Asset value must not be negative")
	}
	m.assets = append(m.assets, *a)
	return nil
}

func (m *MockAssetService) UpdateAsset(a domain.Asset) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockAssetService) DeleteAsset(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockAssetService) RevalueCryptoAssets(ctx context.Context) (int, error) {
	if m.shouldFail {
		return 0, ledgerErrors.ErrNotFound
	}
	return m.revalued, nil
}

type MockGoalService struct {
	goals        []domain.Goal
	progress     float64
	failValidate bool
	notFound     bool
}

func (m *MockGoalService) Goals() []domain.Goal { return m.goals }

func (m *MockGoalService) CreateGoal(g *domain.Goal) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Goal title is required")
	}
	m.goals = append(m.goals, *g)
	return nil
}

func (m *MockGoalService) UpdateGoal(g domain.Goal) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockGoalService) DeleteGoal(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockGoalService) SetCompleted(id string, completed bool) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	if m.failValidate {
		return ledgerErrors.NewValidationError("Only task goals can be completed directly")
	}
	return nil
}

func (m *MockGoalService) Progress(id string) (float64, error) {
	if m.notFound {
		return 0, ledgerErrors.ErrNotFound
	}
	return m.progress, nil
}

type MockCategoryService struct {
	categories   []domain.Category
	failValidate bool
	notFound     bool
}

func (m *MockCategoryService) Categories() []domain.Category { return m.categories }

func (m *MockCategoryService) CategoriesByType(categoryType string) []domain.Category {
	var out []domain.Category
	for _, c := range m.categories {
		if c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockCategoryService) CreateCategory(c *domain.Category) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Category name is required")
	}
	m.categories = append(m.categories, *c)
	return nil
}

func (m *MockCategoryService) UpdateCategory(c domain.Category) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockCategoryService) DeleteCategory(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

type MockNicheService struct {
	niches       []application.NicheWithROI
	failValidate bool
	notFound     bool
}

func (m *MockNicheService) Niches() []application.NicheWithROI { return m.niches }

func (m *MockNicheService) UpsertNiche(n *domain.Niche) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Niche name is required")
	}
	return nil
}

func (m *MockNicheService) DeleteNiche(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

type MockSideFundService struct {
	fund         domain.SideFund
	failValidate bool
}

func (m *MockSideFundService) SideFund() domain.SideFund { return m.fund }

func (m *MockSideFundService) SetTarget(target float64) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Target amount must be greater than zero")
	}
	m.fund.TargetAmount = target
	return nil
}

type MockSyncCodec struct {
	doc        syncdata.Document
	imported   *syncdata.Document
	merged     bool
	shouldFail bool
}

func (m *MockSyncCodec) Export() syncdata.Document { return m.doc }

func (m *MockSyncCodec) Import(doc syncdata.Document, merge bool) error {
	if m.shouldFail {
		return ledgerErrors.ErrNotFound
	}
	m.imported = &doc
	m.merged = merge
	return nil
}
