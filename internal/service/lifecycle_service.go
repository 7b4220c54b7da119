package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const resourceTransaction = "transaction"

// LifecycleDeps are the collaborators of the lifecycle manager.
type LifecycleDeps struct {
	TxRepo       ports.TransactionRepository
	RefundRepo   ports.RefundRepository
	TreasuryRepo ports.TreasuryRepository
	IdempRepo    ports.IdempotencyRepository
	IdempCache   ports.IdempotencyCache
	Transactor   ports.DBTransactor
	Limits       ports.LimitsService
	Wallet       ports.WalletValidator
	Prices       ports.PriceService
	Disburser    ports.TokenDisburser
	Gateway      ports.PaymentGateway
	Encryption   ports.EncryptionService
	Authorizer   ports.Authorizer
	Audit        ports.AuditService
}

// LifecycleConfig tunes the lifecycle manager.
type LifecycleConfig struct {
	RateTolerance   decimal.Decimal // relative fiat/token*rate tolerance
	OutboundTimeout time.Duration
	IdempotencyTTL  time.Duration
}

// LifecycleManager implements ports.LifecycleService.
type LifecycleManager struct {
	LifecycleDeps
	cfg LifecycleConfig
	log zerolog.Logger
	now func() time.Time
}

func NewLifecycleService(deps LifecycleDeps, cfg LifecycleConfig, log zerolog.Logger) *LifecycleManager {
	if cfg.OutboundTimeout <= 0 {
		cfg.OutboundTimeout = 8 * time.Second
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	return &LifecycleManager{
		LifecycleDeps: deps,
		cfg:           cfg,
		log:           log,
		now:           time.Now,
	}
}

// Create validates limits and funds and stores a PENDING transaction.
func (s *LifecycleManager) Create(ctx context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, req.Caller, domain.ActionCreateTransaction) {
		return nil, apperror.ErrForbidden(string(domain.ActionCreateTransaction))
	}
	if !req.Direction.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported direction: %s", req.Direction))
	}
	if !req.Token.IsSupported() {
		return nil, apperror.ErrUnsupportedToken(string(req.Token))
	}
	if !req.TokenAmount.IsPositive() {
		return nil, apperror.ErrInvalidAmount("Token amount must be greater than zero")
	}
	if !req.Token.FitsMinorUnits(req.TokenAmount) {
		return nil, apperror.ErrInvalidAmount(fmt.Sprintf("%s amounts allow at most %d decimal places", req.Token, req.Token.Decimals()))
	}
	address := strings.TrimSpace(req.UserAddress)
	if address == "" {
		return nil, apperror.Validation("User wallet address is required")
	}

	var bank *domain.BankDetails
	if req.Direction == domain.DirectionOffRamp {
		if req.Bank == nil {
			return nil, apperror.ErrMalformedBankDetails("Bank details are required for off-ramp")
		}
		if err := req.Bank.Validate(); err != nil {
			return nil, apperror.ErrMalformedBankDetails(err.Error())
		}
		b := *req.Bank
		b.AccountNumber = strings.TrimSpace(b.AccountNumber)
		bank = &b
	}

	rate, source, err := s.resolveRate(ctx, req)
	if err != nil {
		return nil, err
	}

	fiat := req.FiatAmount
	if fiat.IsZero() {
		fiat = req.TokenAmount.Mul(rate).Round(2)
	} else if !domain.AmountsConsistent(req.TokenAmount, fiat, rate, s.cfg.RateTolerance) {
		return nil, apperror.ErrInvalidAmount("Fiat amount does not match token amount at the quoted rate").
			WithDetail("expected_fiat", req.TokenAmount.Mul(rate).Round(2).String())
	}

	check, err := s.Limits.Check(ctx, req.Direction, req.Token, req.TokenAmount, &fiat)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		return nil, apperror.ErrLimitViolation(check.Errors)
	}

	switch req.Direction {
	case domain.DirectionOffRamp:
		res := s.Wallet.ValidateForOffRamp(ctx, address, req.Token, req.TokenAmount)
		if !res.CanProceed {
			if res.Err != nil {
				return nil, res.Err
			}
			return nil, apperror.Validation(res.ErrorMessage)
		}
	case domain.DirectionOnRamp:
		if err := s.ensureTreasuryCovers(ctx, req.Token, req.TokenAmount); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	tx := &domain.Transaction{
		ID:           uuid.New(),
		Direction:    req.Direction,
		Status:       domain.TransactionStatusPending,
		Token:        req.Token,
		TokenAmount:  req.TokenAmount,
		FiatAmount:   fiat,
		FiatCurrency: domain.FiatNGN,
		ExchangeRate: rate,
		PriceSource:  source,
		UserAddress:  address,
		CreatedBy:    req.Caller.Subject,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Direction == domain.DirectionOnRamp {
		tx.PaymentReference = domain.StrPtr(paymentReferenceFor(tx.ID))
	}
	if bank != nil {
		enc, err := s.Encryption.Encrypt(bank.AccountNumber)
		if err != nil {
			return nil, apperror.ErrEncryptionFailure(fmt.Errorf("encrypt account number: %w", err))
		}
		tx.BankAccountEnc = enc
		bank.AccountNumberMasked = domain.MaskAccountNumber(bank.AccountNumber)
		bank.AccountNumber = ""
		tx.Bank = bank
	}

	dbTx, err := s.Transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.TxRepo.Create(ctx, dbTx, tx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.Transitions.WithLabelValues(string(tx.Direction), "NONE", string(tx.Status)).Inc()
	s.log.Info().
		Str("tx_id", tx.ID.String()).
		Str("direction", string(tx.Direction)).
		Str("token", string(tx.Token)).
		Str("amount", tx.TokenAmount.String()).
		Str("fiat", tx.FiatAmount.String()).
		Str("price_source", string(tx.PriceSource)).
		Msg("transaction created")

	return tx, nil
}

// Get returns a transaction to its creator or to a caller allowed to view reports.
// Other callers get NF_001 so ids cannot be enumerated.
func (s *LifecycleManager) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(tx.CreatedBy, caller.Subject) && !s.Authorizer.IsAuthorized(ctx, caller, domain.ActionViewReports) {
		return nil, apperror.ErrNotFound("Transaction")
	}
	return tx, nil
}

// ConfirmOnRampPayment applies a fiat payment proof to a PENDING on-ramp and
// credits the tokens. Redelivery of the same proof replays the stored result.
func (s *LifecycleManager) ConfirmOnRampPayment(ctx context.Context, req ports.ConfirmPaymentRequest) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, req.Caller, domain.ActionConfirmPayment) {
		return nil, apperror.ErrForbidden(string(domain.ActionConfirmPayment))
	}
	proof := strings.TrimSpace(req.ProofReference)
	if proof == "" {
		return nil, apperror.Validation("Payment proof reference is required")
	}

	idempKey := domain.BuildIdempotencyKey(domain.ActionConfirmPayment, req.TransactionID, proof)
	if replay, err := s.replay(ctx, idempKey); err != nil || replay != nil {
		return replay, err
	}

	tx, err := s.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.Direction != domain.DirectionOnRamp {
		return nil, apperror.Validation("Payment confirmation applies to on-ramp transactions only")
	}
	if domain.Deref(tx.PaymentProof) == proof {
		switch tx.Status {
		case domain.TransactionStatusCompleted:
			return tx, nil
		case domain.TransactionStatusConfirmed:
			return s.retryCredit(ctx, req.Caller, tx, idempKey)
		}
	}
	if tx.Status != domain.TransactionStatusPending {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusConfirmed))
	}

	other, err := s.TxRepo.GetByPaymentProof(ctx, proof)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup payment proof: %w", err))
	}
	if other != nil && other.ID != tx.ID {
		return nil, apperror.ErrReferenceAlreadyUsed(proof)
	}

	// The transition is not abandoned if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	tx.PaymentProof = &proof

	paid := tx.FiatAmount
	if req.PaidFiatAmount != nil {
		paid = *req.PaidFiatAmount
	}
	if verr := s.Wallet.ValidateOnRampPayment(tx, paid); verr != nil {
		if err := s.failMismatch(ctx, tx, paid, verr, idempKey); err != nil {
			return nil, err
		}
		return nil, verr
	}

	if err := s.persistTransition(ctx, tx, domain.TransactionStatusConfirmed, "", nil); err != nil {
		return nil, err
	}
	s.audit(ctx, req.Caller, domain.ActionConfirmPayment, tx, map[string]any{"proof": proof, "paid_fiat": paid.String()})

	return s.creditTokens(ctx, tx, idempKey)
}

// retryCredit re-issues the token credit for a CONFIRMED on-ramp whose
// earlier attempt ended without a known outcome. Attempts younger than the
// outbound timeout may still be in flight and are left alone. The version
// bump claims the retry so concurrent redeliveries cannot both issue it.
func (s *LifecycleManager) retryCredit(ctx context.Context, caller domain.Caller, tx *domain.Transaction, idempKey string) (*domain.Transaction, error) {
	if s.now().UTC().Before(tx.UpdatedAt.Add(s.cfg.OutboundTimeout)) {
		return tx, nil
	}
	ctx = context.WithoutCancel(ctx)
	if err := s.save(ctx, tx); err != nil {
		return nil, err
	}
	s.log.Info().Str("tx_id", tx.ID.String()).Str("caller", caller.Subject).Msg("retrying token credit")
	return s.creditTokens(ctx, tx, idempKey)
}

// creditTokens sends the tokens for a CONFIRMED on-ramp. The signer
// de-duplicates on the transaction id, so re-issuing after an unknown
// outcome never pays twice. Only a definite rejection fails the transaction.
func (s *LifecycleManager) creditTokens(ctx context.Context, tx *domain.Transaction, idempKey string) (*domain.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OutboundTimeout)
	credit, err := s.Disburser.Credit(callCtx, ports.CreditRequest{
		Address:   tx.UserAddress,
		Token:     tx.Token,
		Amount:    tx.TokenAmount,
		Reference: tx.ID.String(),
	})
	cancel()
	if err != nil {
		if !errors.Is(err, ports.ErrCreditRejected) {
			s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Msg("token credit outcome unknown")
			return nil, apperror.ErrTokenCreditPending(err)
		}
		s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Msg("token credit rejected")
		if ferr := s.fail(ctx, tx, "Token credit failed: "+err.Error(), idempKey); ferr != nil {
			return nil, ferr
		}
		return tx, nil
	}

	tx.ChainDigest = domain.StrPtr(credit.Digest)
	err = s.persistTransition(ctx, tx, domain.TransactionStatusCompleted, "", func(dbTx pgx.Tx) error {
		at := s.now().UTC()
		if err := s.TreasuryRepo.Adjust(ctx, dbTx, string(tx.Token), tx.TokenAmount.Neg(), at); err != nil {
			return fmt.Errorf("debit token ledger: %w", err)
		}
		if err := s.TreasuryRepo.Adjust(ctx, dbTx, tx.FiatCurrency, tx.FiatAmount, at); err != nil {
			return fmt.Errorf("credit fiat ledger: %w", err)
		}
		return s.recordIdempotency(ctx, dbTx, idempKey, tx)
	})
	if err != nil {
		return nil, err
	}
	s.cacheIdempotency(ctx, idempKey, tx)
	return tx, nil
}

// ConfirmOffRampDeposit records the user's on-chain transfer to the treasury.
func (s *LifecycleManager) ConfirmOffRampDeposit(ctx context.Context, req ports.ConfirmDepositRequest) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, req.Caller, domain.ActionConfirmDeposit) {
		return nil, apperror.ErrForbidden(string(domain.ActionConfirmDeposit))
	}
	digest := strings.TrimSpace(req.ChainDigest)
	if digest == "" {
		return nil, apperror.Validation("Chain transaction digest is required")
	}

	tx, err := s.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx.Direction != domain.DirectionOffRamp {
		return nil, apperror.Validation("Deposit confirmation applies to off-ramp transactions only")
	}
	if domain.Deref(tx.ChainDigest) == digest && tx.Status != domain.TransactionStatusPending && tx.Status != domain.TransactionStatusFailed {
		return tx, nil
	}
	if tx.Status != domain.TransactionStatusPending {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusConfirmed))
	}

	ctx = context.WithoutCancel(ctx)
	tx.ChainDigest = &digest
	if err := s.persistTransition(ctx, tx, domain.TransactionStatusConfirmed, "", nil); err != nil {
		return nil, err
	}
	s.audit(ctx, req.Caller, domain.ActionConfirmDeposit, tx, map[string]any{"digest": digest})
	return tx, nil
}

// CompleteOffRamp pays the fiat out for a CONFIRMED off-ramp whose deposit
// was observed. The transaction is COMPLETED only once the gateway reports the
// transfer as successful; a pending transfer leaves it CONFIRMED with the
// payout reference recorded for later settlement.
func (s *LifecycleManager) CompleteOffRamp(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, caller, domain.ActionCompleteOffRamp) {
		return nil, apperror.ErrForbidden(string(domain.ActionCompleteOffRamp))
	}

	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Direction != domain.DirectionOffRamp {
		return nil, apperror.Validation("Payout applies to off-ramp transactions only")
	}
	if tx.IsTerminal() {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusCompleted))
	}
	if tx.PayoutReference != nil {
		// A transfer is already in flight; never initiate a second one.
		return s.refresh(ctx, caller, tx)
	}

	// Only an observed deposit moves an off-ramp into CONFIRMED.
	if tx.Status != domain.TransactionStatusConfirmed || tx.ChainDigest == nil {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusCompleted)).
			WithDetail("reason", "token deposit not confirmed")
	}

	ctx = context.WithoutCancel(ctx)
	s.audit(ctx, caller, domain.ActionCompleteOffRamp, tx, nil)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OutboundTimeout)
	available, err := s.Gateway.GetBalance(callCtx)
	cancel()
	if err != nil {
		return nil, apperror.ErrPaymentGatewayUnavailable(err)
	}
	if available.LessThan(tx.FiatAmount) {
		s.log.Warn().
			Str("tx_id", tx.ID.String()).
			Str("available", available.String()).
			Str("required", tx.FiatAmount.String()).
			Msg("treasury cannot cover payout")
		if err := s.fail(ctx, tx, "Insufficient treasury NGN balance for payout", ""); err != nil {
			return nil, err
		}
		return tx, nil
	}

	if tx.Bank == nil || tx.BankAccountEnc == "" {
		return nil, apperror.InternalError(errors.New("off-ramp transaction has no bank details"))
	}
	accountNumber, err := s.Encryption.Decrypt(tx.BankAccountEnc)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt account number: %w", err))
	}
	bank := *tx.Bank
	bank.AccountNumber = accountNumber

	callCtx, cancel = context.WithTimeout(ctx, s.cfg.OutboundTimeout)
	recipient, err := s.Gateway.CreateRecipient(callCtx, bank)
	cancel()
	if err != nil {
		if errors.Is(err, ports.ErrRecipientRejected) {
			if ferr := s.fail(ctx, tx, "Bank account rejected by payment gateway", ""); ferr != nil {
				return nil, ferr
			}
			return tx, nil
		}
		return nil, apperror.ErrPaymentGatewayUnavailable(err)
	}

	reference := tx.ID.String()
	callCtx, cancel = context.WithTimeout(ctx, s.cfg.OutboundTimeout)
	payout, err := s.Gateway.InitiateTransfer(callCtx, ports.TransferRequest{
		RecipientCode: recipient,
		Amount:        tx.FiatAmount,
		Reference:     reference,
		Reason:        fmt.Sprintf("%s off-ramp %s", tx.Token, reference),
	})
	cancel()
	if err != nil {
		if errors.Is(err, ports.ErrGatewayInsufficientBalance) {
			if ferr := s.fail(ctx, tx, "Insufficient treasury NGN balance for payout", ""); ferr != nil {
				return nil, ferr
			}
			return tx, nil
		}
		// The outcome is unknown; keep the reference so settlement can find it.
		s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Msg("transfer initiation outcome unknown")
		tx.PayoutReference = &reference
		if serr := s.save(ctx, tx); serr != nil {
			return nil, serr
		}
		return nil, apperror.ErrPaymentGatewayUnavailable(err)
	}

	if payout.Reference == "" {
		payout.Reference = reference
	}
	tx.PayoutReference = &payout.Reference
	return s.applyPayout(ctx, caller, tx, payout.Status, payout.Reason)
}

// Reject fails a PENDING or CONFIRMED transaction on an admin's decision.
func (s *LifecycleManager) Reject(ctx context.Context, caller domain.Caller, id uuid.UUID, reason string) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, caller, domain.ActionRejectTransaction) {
		return nil, apperror.ErrForbidden(string(domain.ActionRejectTransaction))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.Validation("Rejection reason is required")
	}

	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.IsTerminal() {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusFailed))
	}
	if tx.PayoutReference != nil {
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusFailed)).
			WithDetail("payout_reference", *tx.PayoutReference)
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.fail(ctx, tx, "Rejected by admin: "+reason, ""); err != nil {
		return nil, err
	}
	s.audit(ctx, caller, domain.ActionRejectTransaction, tx, map[string]any{"reason": reason})
	return tx, nil
}

// SettleOffRampPayout applies a gateway transfer outcome, typically from a webhook.
func (s *LifecycleManager) SettleOffRampPayout(ctx context.Context, caller domain.Caller, transferReference string, status domain.PayoutStatus, reason string) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, caller, domain.ActionSettlePayout) {
		return nil, apperror.ErrForbidden(string(domain.ActionSettlePayout))
	}
	transferReference = strings.TrimSpace(transferReference)
	if transferReference == "" {
		return nil, apperror.Validation("Transfer reference is required")
	}

	tx, err := s.TxRepo.GetByPayoutReference(ctx, transferReference)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup payout reference: %w", err))
	}
	if tx == nil {
		if id, perr := uuid.Parse(transferReference); perr == nil {
			if tx, err = s.TxRepo.GetByID(ctx, id); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
			}
		}
	}
	if tx == nil || tx.Direction != domain.DirectionOffRamp {
		return nil, apperror.ErrNotFound("Transaction")
	}
	if tx.PayoutReference == nil {
		tx.PayoutReference = &transferReference
	}

	return s.applyPayout(context.WithoutCancel(ctx), caller, tx, status, reason)
}

// RefreshPayoutStatus polls the gateway for an in-flight payout.
func (s *LifecycleManager) RefreshPayoutStatus(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error) {
	if !s.Authorizer.IsAuthorized(ctx, caller, domain.ActionSettlePayout) {
		return nil, apperror.ErrForbidden(string(domain.ActionSettlePayout))
	}
	tx, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, caller, tx)
}

func (s *LifecycleManager) refresh(ctx context.Context, caller domain.Caller, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.PayoutReference == nil {
		return nil, apperror.Validation("Transaction has no payout in flight")
	}
	if tx.IsTerminal() {
		return tx, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.OutboundTimeout)
	payout, err := s.Gateway.GetTransferStatus(callCtx, *tx.PayoutReference)
	cancel()
	if err != nil {
		return nil, apperror.ErrPaymentGatewayUnavailable(err)
	}
	return s.applyPayout(context.WithoutCancel(ctx), caller, tx, payout.Status, payout.Reason)
}

// applyPayout moves a CONFIRMED off-ramp according to the gateway status.
// Outcomes already applied are returned unchanged.
func (s *LifecycleManager) applyPayout(ctx context.Context, caller domain.Caller, tx *domain.Transaction, status domain.PayoutStatus, reason string) (*domain.Transaction, error) {
	failed := status == domain.PayoutFailed || status == domain.PayoutReversed

	switch tx.Status {
	case domain.TransactionStatusCompleted:
		if status == domain.PayoutSuccess {
			return tx, nil
		}
		s.log.Error().Str("tx_id", tx.ID.String()).Str("payout_status", string(status)).Msg("payout changed after completion")
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusFailed))
	case domain.TransactionStatusFailed:
		if failed {
			return tx, nil
		}
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusCompleted))
	case domain.TransactionStatusPending:
		return nil, apperror.ErrInvalidTransition(string(tx.Status), string(domain.TransactionStatusCompleted))
	}

	switch {
	case status == domain.PayoutSuccess:
		err := s.persistTransition(ctx, tx, domain.TransactionStatusCompleted, "", func(dbTx pgx.Tx) error {
			at := s.now().UTC()
			if err := s.TreasuryRepo.Adjust(ctx, dbTx, string(tx.Token), tx.TokenAmount, at); err != nil {
				return fmt.Errorf("credit token ledger: %w", err)
			}
			if err := s.TreasuryRepo.Adjust(ctx, dbTx, tx.FiatCurrency, tx.FiatAmount.Neg(), at); err != nil {
				return fmt.Errorf("debit fiat ledger: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.audit(ctx, caller, domain.ActionSettlePayout, tx, map[string]any{"payout_status": status})
	case failed:
		msg := "Payout " + string(status)
		if reason != "" {
			msg += ": " + reason
		}
		if err := s.fail(ctx, tx, msg, ""); err != nil {
			return nil, err
		}
		s.audit(ctx, caller, domain.ActionSettlePayout, tx, map[string]any{"payout_status": status})
	default:
		if err := s.save(ctx, tx); err != nil {
			return nil, err
		}
		s.log.Info().Str("tx_id", tx.ID.String()).Str("payout_reference", domain.Deref(tx.PayoutReference)).Msg("payout pending")
	}
	return tx, nil
}

// fail moves tx to FAILED. Leaving CONFIRMED means the user's funds were
// received, so a refund record is written in the same database transaction.
func (s *LifecycleManager) fail(ctx context.Context, tx *domain.Transaction, reason, idempKey string) error {
	refundable := tx.Status == domain.TransactionStatusConfirmed
	err := s.persistTransition(ctx, tx, domain.TransactionStatusFailed, reason, func(dbTx pgx.Tx) error {
		if refundable {
			refund := domain.NewRefundFor(tx, reason, s.now().UTC())
			if err := s.RefundRepo.Create(ctx, dbTx, refund); err != nil {
				return fmt.Errorf("create refund: %w", err)
			}
			s.log.Info().Str("tx_id", tx.ID.String()).Str("refund_id", refund.ID.String()).Str("asset", refund.Asset).Msg("refund recorded")
		}
		if idempKey != "" {
			return s.recordIdempotency(ctx, dbTx, idempKey, tx)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if idempKey != "" {
		s.cacheIdempotency(ctx, idempKey, tx)
	}
	return nil
}

// failMismatch fails a PENDING on-ramp whose payment did not match. Whatever
// was paid is owed back, so the refund carries the paid amount.
func (s *LifecycleManager) failMismatch(ctx context.Context, tx *domain.Transaction, paid decimal.Decimal, cause error, idempKey string) error {
	reason := cause.Error()
	var appErr *apperror.AppError
	if errors.As(cause, &appErr) {
		reason = appErr.Message
	}
	err := s.persistTransition(ctx, tx, domain.TransactionStatusFailed, reason, func(dbTx pgx.Tx) error {
		if paid.IsPositive() {
			refund := domain.NewRefundFor(tx, reason, s.now().UTC())
			refund.Amount = paid
			if err := s.RefundRepo.Create(ctx, dbTx, refund); err != nil {
				return fmt.Errorf("create refund: %w", err)
			}
		}
		return s.recordIdempotency(ctx, dbTx, idempKey, tx)
	})
	if err != nil {
		return err
	}
	s.cacheIdempotency(ctx, idempKey, tx)
	return nil
}

// persistTransition applies next to tx and writes it, together with whatever
// within adds, in one database transaction guarded by the row version.
func (s *LifecycleManager) persistTransition(ctx context.Context, tx *domain.Transaction, next domain.TransactionStatus, reason string, within func(pgx.Tx) error) error {
	from := tx.Status
	if err := tx.Transition(next, s.now().UTC(), reason); err != nil {
		return apperror.ErrInvalidTransition(string(from), string(next))
	}

	if err := s.write(ctx, tx, within); err != nil {
		s.log.Error().Err(err).Str("tx_id", tx.ID.String()).Str("from", string(from)).Str("to", string(next)).Msg("transition not persisted")
		return err
	}

	metrics.Transitions.WithLabelValues(string(tx.Direction), string(from), string(next)).Inc()
	ev := s.log.Info()
	if next == domain.TransactionStatusFailed {
		ev = s.log.Warn().Str("reason", domain.Deref(tx.FailureReason))
	}
	ev.Str("tx_id", tx.ID.String()).
		Str("direction", string(tx.Direction)).
		Str("from", string(from)).
		Str("to", string(next)).
		Msg("transaction transitioned")
	return nil
}

// save writes non-status changes such as a payout reference.
func (s *LifecycleManager) save(ctx context.Context, tx *domain.Transaction) error {
	tx.UpdatedAt = s.now().UTC()
	return s.write(ctx, tx, nil)
}

func (s *LifecycleManager) write(ctx context.Context, tx *domain.Transaction, within func(pgx.Tx) error) error {
	dbTx, err := s.Transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.TxRepo.UpdateState(ctx, dbTx, tx); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return apperror.ErrConcurrentModification()
		}
		if errors.Is(err, domain.ErrDuplicateReference) {
			return apperror.ErrReferenceAlreadyUsed(domain.Deref(tx.PaymentProof))
		}
		return apperror.InternalError(fmt.Errorf("update transaction: %w", err))
	}
	if within != nil {
		if err := within(dbTx); err != nil {
			return apperror.InternalError(err)
		}
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func (s *LifecycleManager) load(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	tx, err := s.TxRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if tx == nil {
		return nil, apperror.ErrNotFound("Transaction")
	}
	return tx, nil
}

func (s *LifecycleManager) resolveRate(ctx context.Context, req ports.CreateTransactionRequest) (decimal.Decimal, domain.PriceSource, error) {
	if req.ExchangeRate != nil {
		if !req.ExchangeRate.IsPositive() {
			return decimal.Zero, "", apperror.ErrInvalidAmount("Exchange rate must be greater than zero")
		}
		return *req.ExchangeRate, domain.PriceSourceClient, nil
	}
	quote, err := s.Prices.GetQuote(ctx, req.Token)
	if err != nil {
		return decimal.Zero, "", err
	}
	return quote.Price, quote.Source, nil
}

func (s *LifecycleManager) ensureTreasuryCovers(ctx context.Context, token domain.Token, amount decimal.Decimal) error {
	bal, err := s.TreasuryRepo.GetBalance(ctx, string(token))
	if err != nil {
		return apperror.InternalError(fmt.Errorf("read treasury balance: %w", err))
	}
	if bal == nil || bal.Available.LessThan(amount) {
		available := decimal.Zero
		if bal != nil {
			available = bal.Available
		}
		return apperror.ErrInsufficientTreasury(fmt.Sprintf("Treasury cannot cover %s %s right now", amount.String(), token)).
			WithDetail("available", available.String())
	}
	return nil
}

// replay returns a stored result for idempKey, checking Redis before the database.
func (s *LifecycleManager) replay(ctx context.Context, idempKey string) (*domain.Transaction, error) {
	if s.IdempCache != nil {
		cached, err := s.IdempCache.Get(ctx, idempKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
		}
		if cached != nil {
			return unmarshalTransaction(cached)
		}
	}

	logEntry, err := s.IdempRepo.Get(ctx, idempKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if logEntry != nil {
		return unmarshalTransaction(logEntry.ResponseJSON)
	}
	return nil, nil
}

func (s *LifecycleManager) recordIdempotency(ctx context.Context, dbTx pgx.Tx, key string, tx *domain.Transaction) error {
	body, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	return s.IdempRepo.Create(ctx, dbTx, &domain.IdempotencyLog{
		Key:           key,
		TransactionID: tx.ID,
		ResponseJSON:  body,
		CreatedAt:     s.now().UTC(),
	})
}

func (s *LifecycleManager) cacheIdempotency(ctx context.Context, key string, tx *domain.Transaction) {
	if s.IdempCache == nil {
		return
	}
	body, err := json.Marshal(tx)
	if err != nil {
		return
	}
	if err := s.IdempCache.Set(ctx, key, body, s.cfg.IdempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
	}
}

func (s *LifecycleManager) audit(ctx context.Context, caller domain.Caller, action domain.Action, tx *domain.Transaction, details map[string]any) {
	if details == nil {
		details = map[string]any{}
	}
	details["status"] = tx.Status
	logAudit(ctx, s.Audit, newAuditEntry(caller, action, resourceTransaction, tx.ID.String(), details))
}

func unmarshalTransaction(data []byte) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached response: %w", err))
	}
	return &tx, nil
}

// paymentReferenceFor is the narration the user quotes on the bank transfer.
func paymentReferenceFor(id uuid.UUID) string {
	return "RMP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}
