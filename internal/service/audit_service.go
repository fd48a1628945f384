package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-jewelry-pos/internal/apperror"
	"go-jewelry-pos/internal/logger"
	"go-jewelry-pos/internal/model"
	"go-jewelry-pos/internal/repository"
	"go-jewelry-pos/internal/ws"
)

// AuditService runs stock takes. A session snapshots what a shop is
// expected to hold at start and lives in memory until Finish persists
// the report. Inventory is not locked while a session runs: the report
// is a comparison against the start-of-session baseline, and concurrent
// sales or transfers show up as differences.
type AuditService interface {
	Start(shopID uuid.UUID) (*AuditState, error)
	Scan(sessionID uuid.UUID, code string) (*ScanOutcome, error)
	SetQuantity(sessionID uuid.UUID, code string, qty int) (*AuditState, error)
	Pause(sessionID uuid.UUID) (*AuditState, error)
	Resume(sessionID uuid.UUID) (*AuditState, error)
	Finish(sessionID uuid.UUID) (*model.AuditSession, error)
	Progress(sessionID uuid.UUID) (*AuditState, error)
	ListReports() ([]model.AuditSession, error)
	GetReport(id uuid.UUID) (*model.AuditSession, error)
}

// AuditState is the live view of a running session.
type AuditState struct {
	SessionID uuid.UUID         `json:"session_id"`
	ShopID    uuid.UUID         `json:"shop_id"`
	ShopName  string            `json:"shop_name"`
	Status    model.AuditStatus `json:"status"`
	StartedAt time.Time         `json:"started_at"`
	Expected  int               `json:"expected"`
	Scanned   int               `json:"scanned"`
	Remaining int               `json:"remaining"`
	Lines     []model.AuditLine `json:"lines,omitempty"`
}

// ScanOutcome reports how one scan landed. Unknown barcodes are an
// outcome, not an error: the scanner keeps feeding codes regardless.
type ScanOutcome struct {
	Result        model.ScanResult `json:"result"`
	Barcode       string           `json:"barcode"`
	Line          *model.AuditLine `json:"line,omitempty"`
	TotalExpected int              `json:"total_expected"`
	TotalScanned  int              `json:"total_scanned"`
}

// liveAudit is one in-memory session: frozen header plus mutable lines
// keyed by barcode. order keeps the listing stable across scans.
type liveAudit struct {
	header *model.AuditSession
	lines  map[string]*model.AuditLine
	order  []string
}

type auditService struct {
	shopRepo  repository.ShopRepository
	stockRepo repository.ShopStockRepository
	auditRepo repository.AuditRepository
	wsHub     ws.Notifier
	log       logger.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*liveAudit
}

func NewAuditService(
	shopRepo repository.ShopRepository,
	stockRepo repository.ShopStockRepository,
	auditRepo repository.AuditRepository,
	hub ws.Notifier,
	log logger.Logger,
) AuditService {
	return &auditService{
		shopRepo:  shopRepo,
		stockRepo: stockRepo,
		auditRepo: auditRepo,
		wsHub:     hub,
		log:       log,
		sessions:  make(map[uuid.UUID]*liveAudit),
	}
}

func (s *auditService) Start(shopID uuid.UUID) (*AuditState, error) {
	// 1. Resolve the shop.
	shop, err := s.shopRepo.FindByID(shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("shop %s not found", shopID)
		}
		return nil, apperror.Persistence(err)
	}

	// 2. Snapshot the expected stock before taking the session lock;
	// the per-shop guard below is re-checked under it.
	rows, err := s.stockRepo.StockedByShop(shopID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 3. One running session per shop.
	for _, la := range s.sessions {
		if la.header.ShopID == shopID && la.header.Status != model.AuditFinished {
			return nil, apperror.Conflictf("audit already running for shop %q", shop.Name)
		}
	}

	// 4. Freeze the baseline. Expected quantities never change after
	// this point, whatever happens to the shop's real stock.
	header := &model.AuditSession{
		ShopID:    shopID,
		ShopName:  shop.Name,
		Status:    model.AuditInProgress,
		StartedAt: time.Now(),
	}
	header.ID = uuid.New()

	la := &liveAudit{
		header: header,
		lines:  make(map[string]*model.AuditLine, len(rows)),
		order:  make([]string, 0, len(rows)),
	}
	for _, row := range rows {
		if row.Item == nil {
			continue
		}
		line := &model.AuditLine{
			ItemID:      row.ItemID,
			Barcode:     row.Item.Barcode,
			ItemName:    row.Item.Name,
			ExpectedQty: row.Quantity,
			UnitPrice:   row.Item.Price,
			WeightGrams: row.Item.WeightGrams,
		}
		la.lines[line.Barcode] = line
		la.order = append(la.order, line.Barcode)
	}
	s.sessions[header.ID] = la

	s.log.Infof("audit started: shop %q, %d lines", shop.Name, len(la.order))
	state := stateOf(la)
	s.notify("audit_started", fmt.Sprintf("audit started for %s", shop.Name), state)
	return state, nil
}

func (s *auditService) Scan(sessionID uuid.UUID, code string) (*ScanOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	la, err := s.liveLocked(sessionID)
	if err != nil {
		return nil, err
	}
	switch la.header.Status {
	case model.AuditPaused:
		return nil, fmt.Errorf("%w: scans are not accepted", apperror.ErrSessionPaused)
	case model.AuditFinished:
		return nil, fmt.Errorf("%w: session is closed", apperror.ErrSessionFinished)
	}

	out := &ScanOutcome{Barcode: code}
	line, ok := la.lines[code]
	switch {
	case !ok:
		out.Result = model.ScanUnknown
	case line.ScannedQty > 0:
		out.Result = model.ScanAlreadyScanned
	default:
		line.ScannedQty = 1
		out.Result = model.ScanScanned
	}
	if line != nil {
		cp := *line
		out.Line = &cp
	}
	for _, bc := range la.order {
		out.TotalExpected += la.lines[bc].ExpectedQty
		out.TotalScanned += la.lines[bc].ScannedQty
	}

	s.notify("audit_scan", fmt.Sprintf("scan %s: %s", code, out.Result), out)
	return out, nil
}

// SetQuantity overrides a line's scanned count, for items counted by
// hand. Unlike Scan it works while paused, and an unknown barcode is an
// error because the operator named it deliberately.
func (s *auditService) SetQuantity(sessionID uuid.UUID, code string, qty int) (*AuditState, error) {
	if qty < 0 {
		return nil, apperror.Validationf("quantity must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	la, err := s.liveLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if la.header.Status == model.AuditFinished {
		return nil, fmt.Errorf("%w: session is closed", apperror.ErrSessionFinished)
	}
	line, ok := la.lines[code]
	if !ok {
		return nil, fmt.Errorf("%w: barcode %s", apperror.ErrUnknownItem, code)
	}
	line.ScannedQty = qty

	state := stateOf(la)
	s.notify("audit_quantity_set", fmt.Sprintf("%s counted as %d", line.ItemName, qty), state)
	return state, nil
}

func (s *auditService) Pause(sessionID uuid.UUID) (*AuditState, error) {
	return s.setStatus(sessionID, model.AuditInProgress, model.AuditPaused, "audit_paused")
}

func (s *auditService) Resume(sessionID uuid.UUID) (*AuditState, error) {
	return s.setStatus(sessionID, model.AuditPaused, model.AuditInProgress, "audit_resumed")
}

func (s *auditService) setStatus(sessionID uuid.UUID, from, to model.AuditStatus, event string) (*AuditState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	la, err := s.liveLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if la.header.Status == model.AuditFinished {
		return nil, fmt.Errorf("%w: session is closed", apperror.ErrSessionFinished)
	}
	if la.header.Status != from {
		return nil, apperror.Conflictf("audit session is %s", la.header.Status)
	}
	la.header.Status = to

	state := stateOf(la)
	s.notify(event, fmt.Sprintf("audit for %s is %s", la.header.ShopName, to), state)
	return state, nil
}

// Finish grades every line against the frozen baseline and persists
// header and lines in one transaction. The in-memory session is marked
// finished only after the commit, so a failed save leaves it open for
// another attempt.
func (s *auditService) Finish(sessionID uuid.UUID) (*model.AuditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	la, err := s.liveLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if la.header.Status == model.AuditFinished {
		return nil, fmt.Errorf("%w: session is closed", apperror.ErrSessionFinished)
	}

	now := time.Now()
	report := *la.header
	report.Status = model.AuditFinished
	report.FinishedAt = &now
	report.DurationMinutes = int(now.Sub(report.StartedAt).Minutes())
	report.ShortageValue = decimal.Zero
	report.ShortageWeight = decimal.Zero

	lines := make([]model.AuditLine, 0, len(la.order))
	for _, bc := range la.order {
		line := *la.lines[bc]
		line.Difference = line.ScannedQty - line.ExpectedQty
		switch {
		case line.Difference == 0:
			line.Status = model.LineFound
		case line.Difference < 0:
			line.Status = model.LineMissing
		default:
			line.Status = model.LineExtra
		}
		shortage := 0
		if line.ExpectedQty > line.ScannedQty {
			shortage = line.ExpectedQty - line.ScannedQty
		}
		line.ShortageValue = line.UnitPrice.Mul(decimal.NewFromInt(int64(shortage)))
		line.ShortageWeight = line.WeightGrams.Mul(decimal.NewFromInt(int64(shortage)))

		report.TotalExpected += line.ExpectedQty
		report.TotalScanned += line.ScannedQty
		report.TotalMissing += shortage
		if line.ScannedQty >= line.ExpectedQty {
			report.TotalCompleted++
		}
		report.ShortageValue = report.ShortageValue.Add(line.ShortageValue)
		report.ShortageWeight = report.ShortageWeight.Add(line.ShortageWeight)
		lines = append(lines, line)
	}

	if err := s.auditRepo.SaveReport(&report, lines); err != nil {
		s.log.Errorf("audit finish failed, session stays open: %v", err)
		return nil, apperror.Persistence(err)
	}

	// Tombstone: keep the header so late scans get a typed rejection,
	// drop the lines.
	la.header.Status = model.AuditFinished
	la.header.FinishedAt = &now
	la.lines = nil
	la.order = nil

	report.Lines = lines
	s.log.Infof("audit finished: shop %q, %d missing units", report.ShopName, report.TotalMissing)
	s.notify("audit_finished", fmt.Sprintf("audit for %s finished", report.ShopName), map[string]interface{}{
		"session_id":     report.ID,
		"total_expected": report.TotalExpected,
		"total_scanned":  report.TotalScanned,
		"total_missing":  report.TotalMissing,
		"shortage_value": report.ShortageValue,
	})
	return &report, nil
}

func (s *auditService) Progress(sessionID uuid.UUID) (*AuditState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	la, err := s.liveLocked(sessionID)
	if err != nil {
		return nil, err
	}
	if la.header.Status == model.AuditFinished {
		return nil, fmt.Errorf("%w: session is closed", apperror.ErrSessionFinished)
	}
	return stateOf(la), nil
}

func (s *auditService) ListReports() ([]model.AuditSession, error) {
	reports, err := s.auditRepo.FindAll()
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	return reports, nil
}

func (s *auditService) GetReport(id uuid.UUID) (*model.AuditSession, error) {
	report, err := s.auditRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("audit report %s not found", id)
		}
		return nil, apperror.Persistence(err)
	}
	return report, nil
}

func (s *auditService) liveLocked(sessionID uuid.UUID) (*liveAudit, error) {
	la, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperror.NotFoundf("audit session %s not found", sessionID)
	}
	return la, nil
}

func stateOf(la *liveAudit) *AuditState {
	st := &AuditState{
		SessionID: la.header.ID,
		ShopID:    la.header.ShopID,
		ShopName:  la.header.ShopName,
		Status:    la.header.Status,
		StartedAt: la.header.StartedAt,
	}
	for _, bc := range la.order {
		line := la.lines[bc]
		st.Expected += line.ExpectedQty
		st.Scanned += line.ScannedQty
		st.Lines = append(st.Lines, *line)
	}
	if st.Expected > st.Scanned {
		st.Remaining = st.Expected - st.Scanned
	}
	return st
}

func (s *auditService) notify(event, message string, data interface{}) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Notify(ws.Event{
		Type:    "audit",
		Action:  event,
		Message: message,
		Data:    data,
	})
}
