package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/testutil"
)

type auditFixture struct {
	db     *gorm.DB
	audits AuditService
	shop   *model.Shop
	ringA  *model.Item
	ringB  *model.Item
}

// newAuditFixture seeds a shop holding 3 of ring A and 1 of ring B,
// plus a sold-out allocation that must stay out of the snapshot.
func newAuditFixture(t *testing.T) *auditFixture {
	db := testutil.OpenDB(t)

	shop := &model.Shop{Name: "Old Town Boutique"}
	require.NoError(t, db.Create(shop).Error)

	ringA := &model.Item{
		Barcode:     "2000001",
		Name:        "Emerald Ring",
		Price:       decimal.RequireFromString("150.00"),
		WeightGrams: decimal.RequireFromString("4.200"),
	}
	ringB := &model.Item{
		Barcode:     "2000002",
		Name:        "Ruby Ring",
		Price:       decimal.RequireFromString("99.00"),
		WeightGrams: decimal.RequireFromString("2.500"),
	}
	soldOut := &model.Item{
		Barcode: "2000003",
		Name:    "Opal Ring",
		Price:   decimal.RequireFromString("75.00"),
	}
	require.NoError(t, db.Create(&[]*model.Item{ringA, ringB, soldOut}).Error)

	for item, qty := range map[*model.Item]int{ringA: 3, ringB: 1, soldOut: 0} {
		require.NoError(t, db.Create(&model.ShopStock{
			ShopID:   shop.ID,
			ItemID:   item.ID,
			Quantity: qty,
		}).Error)
	}

	audits := NewAuditService(
		repository.NewShopRepo(db),
		repository.NewShopStockRepo(db),
		repository.NewAuditRepo(db),
		nil,
		logger.Nop(),
	)
	return &auditFixture{db: db, audits: audits, shop: shop, ringA: ringA, ringB: ringB}
}

func TestStartSnapshotsStockedLines(t *testing.T) {
	f := newAuditFixture(t)

	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	assert.Equal(t, model.AuditInProgress, state.Status)
	assert.Equal(t, f.shop.Name, state.ShopName)
	assert.Len(t, state.Lines, 2, "sold-out allocations stay out of the count")
	assert.Equal(t, 4, state.Expected)
	assert.Equal(t, 0, state.Scanned)
	assert.Equal(t, 4, state.Remaining)
	assert.False(t, state.StartedAt.IsZero())

	_, err = f.audits.Start(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStartOneSessionPerShop(t *testing.T) {
	f := newAuditFixture(t)

	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	_, err = f.audits.Start(f.shop.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict, "a shop runs at most one audit at a time")

	// Another shop is free to start its own count.
	other := &model.Shop{Name: "Airport Stand"}
	require.NoError(t, f.db.Create(other).Error)
	_, err = f.audits.Start(other.ID)
	require.NoError(t, err)

	// Finishing frees the shop for the next count.
	_, err = f.audits.Finish(state.SessionID)
	require.NoError(t, err)
	_, err = f.audits.Start(f.shop.ID)
	assert.NoError(t, err)
}

func TestScanOutcomes(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	out, err := f.audits.Scan(state.SessionID, "2000001")
	require.NoError(t, err)
	assert.Equal(t, model.ScanScanned, out.Result)
	require.NotNil(t, out.Line)
	assert.Equal(t, 1, out.Line.ScannedQty)
	assert.Equal(t, 4, out.TotalExpected)
	assert.Equal(t, 1, out.TotalScanned)

	// A repeat scan flags the duplicate and changes nothing.
	out, err = f.audits.Scan(state.SessionID, "2000001")
	require.NoError(t, err)
	assert.Equal(t, model.ScanAlreadyScanned, out.Result)
	assert.Equal(t, 1, out.TotalScanned)

	// A code outside the snapshot is an outcome, not an error.
	out, err = f.audits.Scan(state.SessionID, "9999999")
	require.NoError(t, err)
	assert.Equal(t, model.ScanUnknown, out.Result)
	assert.Nil(t, out.Line)
	assert.Equal(t, 1, out.TotalScanned)
}

func TestBaselineIsFrozenAtStart(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	// Stock moves while the count runs; the baseline must not follow.
	require.NoError(t, f.db.Model(&model.ShopStock{}).
		Where("shop_id = ? AND item_id = ?", f.shop.ID, f.ringA.ID).
		Update("quantity", 1).Error)

	progress, err := f.audits.Progress(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 4, progress.Expected, "expected quantities are frozen at start")
}

func TestSetQuantity(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	after, err := f.audits.SetQuantity(state.SessionID, "2000001", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Scanned)
	assert.Equal(t, 1, after.Remaining)

	_, err = f.audits.SetQuantity(state.SessionID, "9999999", 1)
	assert.ErrorIs(t, err, apperror.ErrUnknownItem, "a hand-typed unknown barcode is an operator mistake")

	_, err = f.audits.SetQuantity(state.SessionID, "2000001", -1)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPauseAndResume(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	paused, err := f.audits.Pause(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.AuditPaused, paused.Status)

	_, err = f.audits.Pause(state.SessionID)
	assert.ErrorIs(t, err, apperror.ErrConflict, "pausing twice has no meaning")

	_, err = f.audits.Scan(state.SessionID, "2000001")
	assert.ErrorIs(t, err, apperror.ErrSessionPaused)

	// Manual corrections stay available during the break.
	_, err = f.audits.SetQuantity(state.SessionID, "2000002", 1)
	assert.NoError(t, err)

	resumed, err := f.audits.Resume(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.AuditInProgress, resumed.Status)

	_, err = f.audits.Resume(state.SessionID)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	out, err := f.audits.Scan(state.SessionID, "2000001")
	require.NoError(t, err)
	assert.Equal(t, model.ScanScanned, out.Result)
}

func TestFinishGradesLinesAndPersists(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	// Ring A fully counted by hand; ring B never turns up.
	_, err = f.audits.SetQuantity(state.SessionID, "2000001", 3)
	require.NoError(t, err)

	report, err := f.audits.Finish(state.SessionID)
	require.NoError(t, err)

	assert.Equal(t, model.AuditFinished, report.Status)
	require.NotNil(t, report.FinishedAt)
	assert.Equal(t, 4, report.TotalExpected)
	assert.Equal(t, 3, report.TotalScanned)
	assert.Equal(t, 1, report.TotalMissing)
	assert.Equal(t, 1, report.TotalCompleted)
	assert.True(t, report.ShortageValue.Equal(decimal.RequireFromString("99.00")),
		"the missing ruby ring is valued at its unit price")
	assert.True(t, report.ShortageWeight.Equal(decimal.RequireFromString("2.500")))

	require.Len(t, report.Lines, 2)
	byCode := map[string]model.AuditLine{}
	for _, line := range report.Lines {
		byCode[line.Barcode] = line
	}
	found := byCode["2000001"]
	assert.Equal(t, model.LineFound, found.Status)
	assert.Equal(t, 0, found.Difference)
	assert.True(t, found.ShortageValue.IsZero())

	missing := byCode["2000002"]
	assert.Equal(t, model.LineMissing, missing.Status)
	assert.Equal(t, -1, missing.Difference)
	assert.True(t, missing.ShortageValue.Equal(decimal.RequireFromString("99.00")))

	// The report is durable and readable back with its lines.
	persisted, err := f.audits.GetReport(report.ID)
	require.NoError(t, err)
	assert.Len(t, persisted.Lines, 2)
	assert.Equal(t, 1, persisted.TotalMissing)

	all, err := f.audits.ListReports()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFinishGradesSurplus(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)

	// More on the shelf than the ledger expected.
	_, err = f.audits.SetQuantity(state.SessionID, "2000001", 5)
	require.NoError(t, err)
	_, err = f.audits.SetQuantity(state.SessionID, "2000002", 1)
	require.NoError(t, err)

	report, err := f.audits.Finish(state.SessionID)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalMissing)
	assert.Equal(t, 2, report.TotalCompleted)
	assert.True(t, report.ShortageValue.IsZero())

	for _, line := range report.Lines {
		if line.Barcode == "2000001" {
			assert.Equal(t, model.LineExtra, line.Status)
			assert.Equal(t, 2, line.Difference)
		}
	}
}

func TestFinishFailureLeavesSessionOpen(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)
	_, err = f.audits.SetQuantity(state.SessionID, "2000001", 3)
	require.NoError(t, err)

	// Break persistence out from under the service.
	require.NoError(t, f.db.Migrator().DropTable(&model.AuditSession{}))

	_, err = f.audits.Finish(state.SessionID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrPersistence)

	// The session is still live and counting continues.
	progress, err := f.audits.Progress(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Scanned)

	// Once storage is back, the same session finishes cleanly.
	require.NoError(t, f.db.AutoMigrate(&model.AuditSession{}))
	report, err := f.audits.Finish(state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalScanned)
}

func TestFinishedSessionIsClosed(t *testing.T) {
	f := newAuditFixture(t)
	state, err := f.audits.Start(f.shop.ID)
	require.NoError(t, err)
	_, err = f.audits.Finish(state.SessionID)
	require.NoError(t, err)

	_, err = f.audits.Scan(state.SessionID, "2000001")
	assert.ErrorIs(t, err, apperror.ErrSessionFinished)

	_, err = f.audits.SetQuantity(state.SessionID, "2000001", 1)
	assert.ErrorIs(t, err, apperror.ErrSessionFinished)

	_, err = f.audits.Pause(state.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionFinished)

	_, err = f.audits.Progress(state.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionFinished)

	_, err = f.audits.Finish(state.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionFinished)
}

func TestUnknownSession(t *testing.T) {
	f := newAuditFixture(t)

	_, err := f.audits.Scan(uuid.New(), "2000001")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.audits.Progress(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.audits.Finish(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.audits.GetReport(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
