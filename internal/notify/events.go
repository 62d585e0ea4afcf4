package notify

// Event types recognized by the downstream email worker.
const (
	EventCardCreated   = "CARD.CREATE"
	EventCardActivated = "CARD.ACTIVATE"
	EventPurchase      = "TRANSACTION.PURCHASE"
	EventPaid          = "TRANSACTION.PAID"
	EventSaving        = "TRANSACTION.SAVING"
	EventReport        = "REPORT.ACTIVITY"
)

type CardEvent struct {
	Email  string `json:"email"`
	Date   string `json:"date"`
	Kind   string `json:"type"`
	Amount string `json:"amount"`
}

type PurchaseEvent struct {
	Email    string `json:"email"`
	Date     string `json:"date"`
	Merchant string `json:"merchant"`
	CardID   string `json:"cardId"`
	Amount   string `json:"amount"`
}

type PaymentEvent struct {
	Email    string `json:"email"`
	Date     string `json:"date"`
	Merchant string `json:"merchant"`
	Amount   string `json:"amount"`
}

type SavingEvent struct {
	Email       string `json:"email"`
	Date        string `json:"date"`
	Description string `json:"description"`
	CardID      string `json:"cardId"`
	Amount      string `json:"amount"`
}

type ReportEvent struct {
	Email string `json:"email"`
	Date  string `json:"date"`
}
