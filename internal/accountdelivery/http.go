// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
	"github.com/anton-mel/OOPBankApplication/pkg/web"
)

// ErrInvalidAmount indicates that the amount is not a valid decimal.
var ErrInvalidAmount = errors.New("invalid decimal amount")

// BankService provides bank service layer interface needed by the delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type BankService interface {
	OpenAccount(ctx context.Context, bank *domain.Bank, kind domain.AccountKind) (*domain.Account, error)
	GetAccount(bank *domain.Bank, number int32) (*domain.Account, error)
	ListAccounts(bank *domain.Bank) []*domain.Account
}

// AccountService provides account service layer interface needed by the delivery layer.
type AccountService interface {
	AddTransaction(ctx context.Context, bankID int32, account *domain.Account, amount decimal.Decimal, date time.Time) (domain.Transaction, error)
	AssessInterestAndFees(ctx context.Context, bankID int32, account *domain.Account, asOf time.Time) ([]domain.Transaction, error)
	ListTransactions(account *domain.Account) []domain.Transaction
}

// Handler facilitates account delivery layer logic. A single mutex
// serializes all operations: the model is one logical actor per bank graph.
type Handler struct {
	mu       sync.Mutex
	bank     *domain.Bank
	banks    BankService
	accounts AccountService
	now      func() time.Time
}

// NewHandler returns account handler operating on the given bank graph.
func NewHandler(bank *domain.Bank, bs BankService, as AccountService) *Handler {
	return &Handler{
		bank:     bank,
		banks:    bs,
		accounts: as,
		now:      time.Now,
	}
}

// RegisterRoutes attaches the account routes to the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/accounts", h.Open)
	r.GET("/accounts", h.List)
	r.GET("/accounts/:id", h.Get)
	r.POST("/accounts/:id/transactions", h.AddTransaction)
	r.GET("/accounts/:id/transactions", h.ListTransactions)
	r.POST("/accounts/:id/assessments", h.Assess)
}

type accountData struct {
	Account *domain.Account `json:"account"`
}

type accountsData struct {
	Accounts []*domain.Account `json:"accounts"`
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type openRequest struct {
	Type string `json:"type" binding:"required,accountkind"`
}

// Open handles http request to open an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req openRequest
	if !h.bind(gctx, gctx.ShouldBindJSON(&req)) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.banks.OpenAccount(ctx, h.bank, domain.AccountKind(req.Type))
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	accounts := h.banks.ListAccounts(h.bank)

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

type uriRequest struct {
	ID int32 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a single account.
func (h *Handler) Get(gctx *gin.Context) {
	var req uriRequest
	if !h.bind(gctx, gctx.ShouldBindUri(&req)) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.banks.GetAccount(h.bank, req.ID)
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{account}})
}

type addTransactionRequest struct {
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
}

// AddTransaction handles http request to record a transaction.
func (h *Handler) AddTransaction(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var uri uriRequest
	if !h.bind(gctx, gctx.ShouldBindUri(&uri)) {
		return
	}

	var req addTransactionRequest
	if !h.bind(gctx, gctx.ShouldBindJSON(&req)) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(ErrInvalidAmount))

		return
	}

	// The date is pre-validated by the datetime binding tag.
	date, _ := time.Parse(domain.DateLayout, req.Date)

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.banks.GetAccount(h.bank, uri.ID)
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	transaction, err := h.accounts.AddTransaction(ctx, h.bank.ID, account, amount, date)
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{transaction}})
}

// ListTransactions handles http request to list an account's ledger.
func (h *Handler) ListTransactions(gctx *gin.Context) {
	var uri uriRequest
	if !h.bind(gctx, gctx.ShouldBindUri(&uri)) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.banks.GetAccount(h.bank, uri.ID)
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	transactions := h.accounts.ListTransactions(account)

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{transactions}})
}

// Assess handles http request to run the monthly interest and fees
// assessment on an account.
func (h *Handler) Assess(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if !h.bind(gctx, gctx.ShouldBindUri(&uri)) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	account, err := h.banks.GetAccount(h.bank, uri.ID)
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	posted, err := h.accounts.AssessInterestAndFees(ctx, h.bank.ID, account, h.now())
	if err != nil {
		h.renderError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{posted}})
}

// bind reports whether binding succeeded, rendering the 400 response when it
// did not.
func (h *Handler) bind(gctx *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	l := zerolog.Ctx(gctx)

	var (
		ve     validator.ValidationErrors
		errMsg string
	)

	if errors.As(err, &ve) {
		field := ve[0]
		errMsg = field.Field() + web.GetErrorMsg(field)
	} else {
		errMsg = err.Error()
	}

	l.Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

	return false
}

func (h *Handler) renderError(gctx *gin.Context, err error) {
	var (
		seqErr   *domain.SequenceError
		limitErr *domain.LimitError
	)

	switch {
	case errors.As(err, &seqErr):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case errors.As(err, &limitErr):
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errors.Is(err, domain.ErrOverdrawn):
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrUnsupportedKind):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
