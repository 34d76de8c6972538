package domain

// Snapshot is one atomically-consistent read of the menu catalog and stock
// ledger. Keys preserves source row order so listings render in a stable
// order. Resolution treats a snapshot as immutable.
type Snapshot struct {
	Keys  []string
	Menu  map[string]int
	Stock map[string]int
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Menu:  make(map[string]int),
		Stock: make(map[string]int),
	}
}

// Add registers an item row. A repeated key updates price and stock in place
// and keeps its original position.
func (s *Snapshot) Add(key string, price, stock int) {
	if _, ok := s.Menu[key]; !ok {
		s.Keys = append(s.Keys, key)
	}
	s.Menu[key] = price
	s.Stock[key] = stock
}

func (s Snapshot) HasItem(key string) bool {
	_, ok := s.Menu[key]
	return ok
}

func (s Snapshot) Empty() bool {
	return len(s.Menu) == 0
}

// Hint is a best-effort machine-extracted order guess from the external
// intent service. Either field may be unset; neither is trusted blindly.
type Hint struct {
	Item string `json:"item"`
	Qty  int    `json:"qty"`
}

// CandidateLine is a resolved but not yet stock-checked order line.
// Quantity is always >= 1.
type CandidateLine struct {
	ItemKey  string `json:"item_key"`
	Quantity int    `json:"quantity"`
}

// ValidatedLine is a candidate line that passed the stock check and was
// priced from the catalog. Subtotal is exactly UnitPrice*Quantity.
type ValidatedLine struct {
	CandidateLine
	UnitPrice int `json:"unit_price"`
	Subtotal  int `json:"subtotal"`
}

type OutcomeKind int

const (
	OutcomeResolved OutcomeKind = iota
	OutcomeOutOfStock
	OutcomeInsufficientStock
	OutcomeUnresolved
	OutcomeEmptyCatalog
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResolved:
		return "resolved"
	case OutcomeOutOfStock:
		return "out_of_stock"
	case OutcomeInsufficientStock:
		return "insufficient_stock"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeEmptyCatalog:
		return "empty_catalog"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one resolution call. Lines and Total are
// set only for OutcomeResolved; ItemKey names the failing item for the stock
// outcomes; Available carries the remaining count for insufficient stock.
type Outcome struct {
	Kind      OutcomeKind
	Lines     []ValidatedLine
	Total     int
	ItemKey   string
	Available int
}

// Chat roles carried on inbound messages.
const (
	RoleOwner    = "OWNER"
	RoleCustomer = "CUSTOMER"
)

// MQTT payloads

type InboundMessage struct {
	MessageID     string `json:"message_id,omitempty"`
	Sender        string `json:"sender,omitempty"`
	Role          string `json:"role,omitempty"`
	Text          string `json:"text,omitempty"`
	Caption       string `json:"caption,omitempty"`
	SelectedRowID string `json:"selected_row_id,omitempty"`
}

// Body extracts the utterance from whichever field the transport filled:
// plain text, a media caption, or a selected quick-reply value.
func (m InboundMessage) Body() string {
	for _, s := range []string{m.Text, m.Caption, m.SelectedRowID} {
		if s != "" {
			return s
		}
	}
	return ""
}

type OutboundMessage struct {
	MessageID string `json:"message_id"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Text      string `json:"text"`
}

// HTTP payloads

type ResolveRequest struct {
	Text  string `json:"text"`
	Hints []Hint `json:"hints,omitempty"`
}

type ResolveResponse struct {
	Outcome string          `json:"outcome"`
	Reply   string          `json:"reply"`
	Lines   []ValidatedLine `json:"lines,omitempty"`
	Total   int             `json:"total,omitempty"`
}
