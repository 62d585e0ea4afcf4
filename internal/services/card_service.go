package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"cardbank/internal/db"
	"cardbank/internal/models"
	"cardbank/internal/money"
	"cardbank/internal/notify"
	"cardbank/internal/store"
	"cardbank/internal/websocket"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingUserID    = errors.New("user id is required")
	ErrUserNotFound     = errors.New("user not found")
	ErrCardNotFound     = errors.New("card not found")
	ErrCardNotActivated = errors.New("card not activated")
	ErrWrongCardKind    = errors.New("wrong card kind")
)

// NotActivatedError carries the card kind so callers can tell holders of a
// pending credit card how to activate it. errors.Is matches
// ErrCardNotActivated.
type NotActivatedError struct {
	Kind string
}

func (e *NotActivatedError) Error() string {
	return "card not activated"
}

func (e *NotActivatedError) Is(target error) bool {
	return target == ErrCardNotActivated
}

// LimitExceededError carries the headroom left on the card so the caller can
// report the maximum payment still allowed.
type LimitExceededError struct {
	CurrentBalance    decimal.Decimal
	PaymentAmount     decimal.Decimal
	MaxAllowedPayment decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("payment of %s exceeds card limit, max allowed %s",
		money.Format(e.PaymentAmount), money.Format(e.MaxAllowedPayment))
}

// A pending credit card activates once the owner's debit card has this many
// recorded transactions.
const activationThreshold = 10

// Informational amount carried on activation notifications.
var activationNoticeAmount = decimal.NewFromInt(1000)

type CardStore interface {
	Create(ctx context.Context, tx store.Execer, card models.Card) error
	GetByID(ctx context.Context, cardID string) (models.Card, error)
	GetForUpdate(ctx context.Context, tx store.Getter, cardID string) (models.Card, error)
	GetByUser(ctx context.Context, q store.Selecter, userID string) ([]models.Card, error)
	UpdateBalance(ctx context.Context, tx store.Execer, cardID string, balance decimal.Decimal) error
	UpdateStatus(ctx context.Context, tx store.Execer, cardID, status string) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	ListByCard(ctx context.Context, cardID string) ([]models.Transaction, error)
	CountByCard(ctx context.Context, q store.Getter, cardID string) (int, error)
}

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, email, name string) error
	GetByID(ctx context.Context, userID string) (models.User, error)
}

type Notifier interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

type CardHub interface {
	BroadcastCard(userID string, update websocket.CardUpdate)
}

type CardService struct {
	txRunner     db.TxRunner
	cards        CardStore
	transactions TransactionStore
	users        UserStore
	notifier     Notifier
	hub          CardHub
}

func NewCardService(txRunner db.TxRunner, cards CardStore, transactions TransactionStore, users UserStore, notifier Notifier, hub CardHub) *CardService {
	return &CardService{
		txRunner:     txRunner,
		cards:        cards,
		transactions: transactions,
		users:        users,
		notifier:     notifier,
		hub:          hub,
	}
}

type PurchaseRequest struct {
	CardID   string
	Amount   decimal.Decimal
	Merchant string
}

type PurchaseResult struct {
	TransactionID string
	Approved      bool
	NewBalance    decimal.Decimal
	CreatedAt     time.Time
}

// Purchase authorizes a purchase against an activated card. The transaction
// is recorded whether or not the purchase is approved; the balance moves only
// on approval. The activation check runs once per invocation regardless of
// the outcome.
func (s *CardService) Purchase(ctx context.Context, req PurchaseRequest) (PurchaseResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return PurchaseResult{}, ErrInvalidAmount
	}
	var card models.Card
	var activated *models.Card
	result := PurchaseResult{
		TransactionID: uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		card, err = s.cards.GetForUpdate(ctx, tx, req.CardID)
		if err != nil {
			return mapNotFound(err)
		}
		if card.Status != models.CardStatusActivated {
			return &NotActivatedError{Kind: card.Kind}
		}
		result.Approved = card.Balance.GreaterThanOrEqual(req.Amount)
		result.NewBalance = card.Balance
		if result.Approved {
			result.NewBalance = money.Round2(card.Balance.Sub(req.Amount))
		}
		if err := s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:        result.TransactionID,
			CardID:    card.ID,
			Amount:    req.Amount,
			Merchant:  req.Merchant,
			Kind:      models.TransactionKindPurchase,
			Approved:  result.Approved,
			CreatedAt: result.CreatedAt,
		}); err != nil {
			return err
		}
		if result.Approved {
			if err := s.cards.UpdateBalance(ctx, tx, card.ID, result.NewBalance); err != nil {
				return err
			}
		}
		activated, err = s.evaluateActivation(ctx, tx, card.UserID)
		return err
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	if email := s.lookupEmail(ctx, card.UserID); email != "" {
		s.publish(ctx, notify.EventPurchase, notify.PurchaseEvent{
			Email:    email,
			Date:     result.CreatedAt.Format(time.RFC3339),
			Merchant: req.Merchant,
			CardID:   card.ID,
			Amount:   money.Format(req.Amount),
		})
	}
	if result.Approved {
		s.hub.BroadcastCard(card.UserID, websocket.CardUpdate{
			CardID:  card.ID,
			Balance: money.Format(result.NewBalance),
			Status:  card.Status,
		})
	}
	s.announceActivation(ctx, activated)
	return result, nil
}

type PaymentRequest struct {
	CardID   string
	Amount   decimal.Decimal
	Merchant string
}

type PaymentResult struct {
	TransactionID   string
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	CreatedAt       time.Time
}

// PayCard posts a payment to a credit card. A payment that would push the
// balance above the card limit is rejected without recording anything.
func (s *CardService) PayCard(ctx context.Context, req PaymentRequest) (PaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return PaymentResult{}, ErrInvalidAmount
	}
	var card models.Card
	result := PaymentResult{
		TransactionID: uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		card, err = s.cards.GetForUpdate(ctx, tx, req.CardID)
		if err != nil {
			return mapNotFound(err)
		}
		if card.Kind != models.CardKindCredit {
			return ErrWrongCardKind
		}
		result.PreviousBalance = card.Balance
		result.NewBalance = money.Round2(card.Balance.Add(req.Amount))
		if card.Limit != nil && result.NewBalance.GreaterThan(*card.Limit) {
			return &LimitExceededError{
				CurrentBalance:    card.Balance,
				PaymentAmount:     req.Amount,
				MaxAllowedPayment: card.Limit.Sub(card.Balance),
			}
		}
		if err := s.cards.UpdateBalance(ctx, tx, card.ID, result.NewBalance); err != nil {
			return err
		}
		return s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:        result.TransactionID,
			CardID:    card.ID,
			Amount:    req.Amount,
			Merchant:  req.Merchant,
			Kind:      models.TransactionKindPayment,
			Approved:  true,
			CreatedAt: result.CreatedAt,
		})
	})
	if err != nil {
		return PaymentResult{}, err
	}

	if email := s.lookupEmail(ctx, card.UserID); email != "" {
		s.publish(ctx, notify.EventPaid, notify.PaymentEvent{
			Email:    email,
			Date:     result.CreatedAt.Format(time.RFC3339),
			Merchant: req.Merchant,
			Amount:   money.Format(req.Amount),
		})
	}
	s.hub.BroadcastCard(card.UserID, websocket.CardUpdate{
		CardID:  card.ID,
		Balance: money.Format(result.NewBalance),
		Status:  card.Status,
	})
	return result, nil
}

type SavingRequest struct {
	CardID      string
	Amount      decimal.Decimal
	Description string
}

type SavingResult struct {
	TransactionID string
	NewBalance    decimal.Decimal
	CreatedAt     time.Time
}

// Save posts a deposit to a debit card. Deposits are never capped; the
// activation check runs afterwards so the fresh transaction counts.
func (s *CardService) Save(ctx context.Context, req SavingRequest) (SavingResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return SavingResult{}, ErrInvalidAmount
	}
	var card models.Card
	var activated *models.Card
	result := SavingResult{
		TransactionID: uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		card, err = s.cards.GetForUpdate(ctx, tx, req.CardID)
		if err != nil {
			return mapNotFound(err)
		}
		if card.Kind != models.CardKindDebit {
			return ErrWrongCardKind
		}
		result.NewBalance = money.Round2(card.Balance.Add(req.Amount))
		if err := s.cards.UpdateBalance(ctx, tx, card.ID, result.NewBalance); err != nil {
			return err
		}
		if err := s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:        result.TransactionID,
			CardID:    card.ID,
			Amount:    req.Amount,
			Merchant:  req.Description,
			Kind:      models.TransactionKindSaving,
			Approved:  true,
			CreatedAt: result.CreatedAt,
		}); err != nil {
			return err
		}
		activated, err = s.evaluateActivation(ctx, tx, card.UserID)
		return err
	})
	if err != nil {
		return SavingResult{}, err
	}

	if email := s.lookupEmail(ctx, card.UserID); email != "" {
		s.publish(ctx, notify.EventSaving, notify.SavingEvent{
			Email:       email,
			Date:        result.CreatedAt.Format(time.RFC3339),
			Description: req.Description,
			CardID:      card.ID,
			Amount:      money.Format(req.Amount),
		})
	}
	s.hub.BroadcastCard(card.UserID, websocket.CardUpdate{
		CardID:  card.ID,
		Balance: money.Format(result.NewBalance),
		Status:  card.Status,
	})
	s.announceActivation(ctx, activated)
	return result, nil
}

// CreateCards provisions the debit/credit pair for a card request: the debit
// card starts activated at zero, the credit card starts pending with a random
// limit and a matching opening balance.
func (s *CardService) CreateCards(ctx context.Context, userID string) ([]models.Card, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	now := time.Now().UTC()
	limit := money.RandomCreditLimit()
	debit := models.Card{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      models.CardKindDebit,
		Status:    models.CardStatusActivated,
		Balance:   decimal.Zero,
		CreatedAt: now,
	}
	credit := models.Card{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      models.CardKindCredit,
		Status:    models.CardStatusPending,
		Balance:   limit,
		Limit:     &limit,
		CreatedAt: now,
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.cards.Create(ctx, tx, debit); err != nil {
			return err
		}
		return s.cards.Create(ctx, tx, credit)
	})
	if err != nil {
		return nil, err
	}

	if user.Email != "" {
		for _, card := range []models.Card{debit, credit} {
			s.publish(ctx, notify.EventCardCreated, notify.CardEvent{
				Email:  user.Email,
				Date:   card.CreatedAt.Format(time.RFC3339),
				Kind:   card.Kind,
				Amount: money.Format(card.Balance),
			})
		}
	}
	return []models.Card{debit, credit}, nil
}

// CreateUser registers a card holder. Duplicate emails surface as the
// database's unique violation for the caller to map.
func (s *CardService) CreateUser(ctx context.Context, email, name string) (models.User, error) {
	user := models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.users.Create(ctx, tx, user.ID, user.Email, user.Name)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ActivateCard is the back-office escape hatch: it flips the card to
// ACTIVATED without consulting the transaction count.
func (s *CardService) ActivateCard(ctx context.Context, cardID string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		card, err := s.cards.GetForUpdate(ctx, tx, cardID)
		if err != nil {
			return mapNotFound(err)
		}
		if card.Status == models.CardStatusActivated {
			return nil
		}
		return s.cards.UpdateStatus(ctx, tx, card.ID, models.CardStatusActivated)
	})
}

func (s *CardService) GetCard(ctx context.Context, cardID string) (models.Card, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return models.Card{}, mapNotFound(err)
	}
	return card, nil
}

// Report loads a card's full transaction history and announces the report;
// rendering is left to the caller.
func (s *CardService) Report(ctx context.Context, cardID string) (models.Card, []models.Transaction, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return models.Card{}, nil, mapNotFound(err)
	}
	transactions, err := s.transactions.ListByCard(ctx, cardID)
	if err != nil {
		return models.Card{}, nil, err
	}
	if email := s.lookupEmail(ctx, card.UserID); email != "" {
		s.publish(ctx, notify.EventReport, notify.ReportEvent{
			Email: email,
			Date:  time.Now().UTC().Format(time.RFC3339),
		})
	}
	return card, transactions, nil
}

// evaluateActivation applies the activation rule for the owner's pending
// credit card. The credit card is linked to the debit card only through the
// shared owner, so both are resolved by scanning the owner's cards. A missing
// debit card makes the check a no-op, never an error.
func (s *CardService) evaluateActivation(ctx context.Context, tx *sqlx.Tx, userID string) (*models.Card, error) {
	cards, err := s.cards.GetByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	var credit, debit *models.Card
	for i := range cards {
		switch {
		case cards[i].Kind == models.CardKindCredit && cards[i].Status == models.CardStatusPending && credit == nil:
			credit = &cards[i]
		case cards[i].Kind == models.CardKindDebit && debit == nil:
			debit = &cards[i]
		}
	}
	if credit == nil || debit == nil {
		return nil, nil
	}
	count, err := s.transactions.CountByCard(ctx, tx, debit.ID)
	if err != nil {
		return nil, err
	}
	if count < activationThreshold {
		return nil, nil
	}
	if err := s.cards.UpdateStatus(ctx, tx, credit.ID, models.CardStatusActivated); err != nil {
		return nil, err
	}
	log.Printf("credit card %s activated after %d debit transactions", credit.ID, count)
	credit.Status = models.CardStatusActivated
	return credit, nil
}

func (s *CardService) announceActivation(ctx context.Context, card *models.Card) {
	if card == nil {
		return
	}
	if email := s.lookupEmail(ctx, card.UserID); email != "" {
		s.publish(ctx, notify.EventCardActivated, notify.CardEvent{
			Email:  email,
			Date:   time.Now().UTC().Format(time.RFC3339),
			Kind:   card.Kind,
			Amount: money.Format(activationNoticeAmount),
		})
	}
	s.hub.BroadcastCard(card.UserID, websocket.CardUpdate{
		CardID:  card.ID,
		Balance: money.Format(card.Balance),
		Status:  card.Status,
	})
}

// publish is fire and forget: a dispatch failure is logged and never unwinds
// the ledger mutation it follows.
func (s *CardService) publish(ctx context.Context, eventType string, payload any) {
	if err := s.notifier.Publish(ctx, eventType, payload); err != nil {
		log.Printf("notification %s dropped: %v", eventType, err)
	}
}

// lookupEmail resolves the recipient for a notification. An empty result
// means the notification is skipped, not sent blank.
func (s *CardService) lookupEmail(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("could not resolve email for user %s, skipping notification: %v", userID, err)
		return ""
	}
	return user.Email
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCardNotFound
	}
	return err
}
