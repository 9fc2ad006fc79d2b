package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/export"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/SscSPs/cashbook_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reportService struct {
	BaseService
	entryRepo    portsrepo.CashEntryReader
	bankRepo     portsrepo.BankAccountReader
	businessRepo portsrepo.BusinessReader
	parties      portssvc.PartyReaderSvc
}

// NewReportService creates a new report service.
func NewReportService(
	entryRepo portsrepo.CashEntryReader,
	bankRepo portsrepo.BankAccountReader,
	businessRepo portsrepo.BusinessReader,
	parties portssvc.PartyReaderSvc,
	authorizer portssvc.BusinessAuthorizerSvc,
) portssvc.ReportSvcFacade {
	return &reportService{
		BaseService:  BaseService{BusinessAuthorizer: authorizer},
		entryRepo:    entryRepo,
		bankRepo:     bankRepo,
		businessRepo: businessRepo,
		parties:      parties,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) GetSummary(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*dto.ReportSummary, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	filter := domain.CashEntryFilter{Dates: dates}
	summary, err := s.entryRepo.SummarizeEntries(ctx, businessID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize entries", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to summarize entries: %w", err)
	}
	categories, err := s.entryRepo.CategoryTotals(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to total categories: %w", err)
	}
	accounts, err := s.bankRepo.ListBankAccounts(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank accounts: %w", err)
	}
	bankBalance := decimal.Zero
	for _, a := range accounts {
		if a.IsActive {
			bankBalance = bankBalance.Add(a.CurrentBalance)
		}
	}
	if categories == nil {
		categories = []domain.CategoryTotal{}
	}

	return &dto.ReportSummary{
		StartDate:         toDate(dates.From),
		EndDate:           toDate(dates.To),
		TotalIncome:       summary.TotalIncome,
		TotalExpense:      summary.TotalExpense,
		NetBalance:        summary.NetBalance,
		CategoryTotals:    categories,
		BankBalance:       bankBalance,
		DisplayNetBalance: utils.FormatDisplayAmount(summary.NetBalance),
	}, nil
}

func (s *reportService) ExportCashbook(ctx context.Context, businessID string, dates domain.DateRange, userID string) (*portssvc.ExportFile, error) {
	if _, err := s.AuthorizeUser(ctx, userID, businessID, domain.RoleViewer); err != nil {
		return nil, err
	}
	filter := domain.CashEntryFilter{Dates: dates}
	entries, err := s.entryRepo.ListAllEntries(ctx, businessID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for export", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	summary, err := s.entryRepo.SummarizeEntries(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize entries: %w", err)
	}

	opening := decimal.Zero
	if dates.From != nil {
		before := dates.From.AddDate(0, 0, -1)
		prior, err := s.entryRepo.SummarizeEntries(ctx, businessID, domain.CashEntryFilter{Dates: domain.DateRange{To: &before}})
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance brought forward: %w", err)
		}
		opening = prior.NetBalance
	}

	accounting.SortChronologically(entries, func(e domain.CashEntry) (time.Time, time.Time) {
		return e.EntryDate, e.CreatedAt
	})
	signed, err := accounting.CashEntries(entries)
	if err != nil {
		return nil, err
	}
	result := accounting.Accumulate(opening, signed)
	rows := make([]export.CashbookRow, len(entries))
	for i, e := range entries {
		rows[i] = export.CashbookRow{Entry: e, Balance: result.PerEntryBalance[i]}
	}

	content, err := export.CashbookXLSX(rows, summary)
	if err != nil {
		s.LogError(ctx, err, "Failed to render cashbook workbook", slog.String("business_id", businessID))
		return nil, fmt.Errorf("failed to export cashbook: %w", err)
	}
	return &portssvc.ExportFile{
		FileName:    "cashbook" + periodSuffix(dates) + ".xlsx",
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}

func (s *reportService) ExportPartyLedger(ctx context.Context, businessID, partyID string, dates domain.DateRange, format string, userID string) (*portssvc.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "pdf" {
		return nil, apperrors.NewValidationFailedError("format must be xlsx or pdf")
	}

	ledger, err := s.parties.GetLedger(ctx, businessID, partyID, dates, userID)
	if err != nil {
		return nil, err
	}
	name := "ledger-" + slug(ledger.Party.Name) + periodSuffix(dates)

	if format == "xlsx" {
		content, err := export.PartyLedgerXLSX(*ledger)
		if err != nil {
			return nil, fmt.Errorf("failed to export ledger: %w", err)
		}
		return &portssvc.ExportFile{FileName: name + ".xlsx", ContentType: export.XLSXContentType, Content: content}, nil
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	content, err := export.PartyLedgerPDF(business.Name, business.CurrencyCode, *ledger, periodLabel(dates))
	if err != nil {
		s.LogError(ctx, err, "Failed to render ledger pdf", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to export ledger: %w", err)
	}
	return &portssvc.ExportFile{FileName: name + ".pdf", ContentType: export.PDFContentType, Content: content}, nil
}

func toDate(t *time.Time) *dto.Date {
	if t == nil {
		return nil
	}
	return &dto.Date{Time: *t}
}

func periodLabel(dates domain.DateRange) string {
	switch {
	case dates.From != nil && dates.To != nil:
		return dates.From.Format(dto.DateLayout) + " to " + dates.To.Format(dto.DateLayout)
	case dates.From != nil:
		return "from " + dates.From.Format(dto.DateLayout)
	case dates.To != nil:
		return "up to " + dates.To.Format(dto.DateLayout)
	}
	return ""
}

func periodSuffix(dates domain.DateRange) string {
	var parts []string
	if dates.From != nil {
		parts = append(parts, dates.From.Format(dto.DateLayout))
	}
	if dates.To != nil {
		parts = append(parts, dates.To.Format(dto.DateLayout))
	}
	if len(parts) == 0 {
		return ""
	}
	return "-" + strings.Join(parts, "_")
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "party"
	}
	return out
}
