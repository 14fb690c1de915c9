package dashboard

import (
	"io"
	"strconv"
	"sync"
	"text/template"
	"time"

	"github.com/dwarvesf/node-dashboard/internal/model"
)

const clearScreen = "\033[H\033[2J"

var screenTemplate = template.Must(template.New("screen").Parse(`Node Dashboard
==============

Status{{if .StatusAt}}                          (updated {{.StatusAt}}){{end}}
  Block count : {{.Status.BlockCount}}
  Chain       : {{.Status.Chain}}
  Sync        : {{.Status.Sync}}
  Blocks      : {{.Status.Blocks}}
  Headers     : {{.Status.Headers}}
  Peers       : {{.Status.Peers}}
  Pruned      : {{.Status.Pruned}}
  Size        : {{.Status.Size}}

Wallet{{if .BalanceAt}}                          (updated {{.BalanceAt}}){{end}}
  Balance     : {{.Balance.Value}}{{if .Balance.Message}}
  Note        : {{.Balance.Message}}{{end}}

Transactions ({{.TxCount}} item(s)){{if .TxsAt}}  (updated {{.TxsAt}}){{end}}
  {{printf "%-19s  %-8s  %16s  %5s  %s" "Time" "Category" "Amount" "Conf" "TxID"}}
{{- range .Txs}}
  {{printf "%-19s  %-8s  %16s  %5s  %s" .Time .Category .Amount .Confirmations .TxID}}
{{- end}}
`))

// StatusView is the status region as shown; every field is already text.
type StatusView struct {
	BlockCount string
	Chain      string
	Sync       string
	Blocks     string
	Headers    string
	Peers      string
	Pruned     string
	Size       string
}

type BalanceView struct {
	Value   string
	Message string
}

type TxRow struct {
	Time          string
	Category      string
	Amount        string
	Confirmations string
	TxID          string
}

type screen struct {
	Status    StatusView
	StatusAt  string
	Balance   BalanceView
	BalanceAt string
	Txs       []TxRow
	TxCount   int
	TxsAt     string
}

// Display holds the three dashboard regions. Each region has its own lock,
// so a slow or failing fetch never blocks or clobbers the others.
type Display struct {
	statusMu sync.RWMutex
	status   StatusView
	statusAt time.Time

	balanceMu sync.RWMutex
	balance   BalanceView
	balanceAt time.Time

	txsMu sync.RWMutex
	txs   []TxRow
	txsAt time.Time

	renderMu sync.Mutex
	out      io.Writer
	redraw   bool
}

// NewDisplay renders to out; redraw wipes the terminal before every frame.
func NewDisplay(out io.Writer, redraw bool) *Display {
	return &Display{
		status:  StatusView{BlockCount: "-", Chain: "-", Sync: "-", Blocks: "-", Headers: "-", Peers: "-", Pruned: "-", Size: "-"},
		balance: BalanceView{Value: "-"},
		txs:     []TxRow{},
		out:     out,
		redraw:  redraw,
	}
}

func (d *Display) SetStatus(s *model.StatusSnapshot) {
	view := StatusView{
		BlockCount: strconv.FormatInt(s.BlockCount, 10),
		Chain:      ChainLabel(s.Chain),
		Sync:       strconv.FormatFloat(s.Sync, 'f', -1, 64),
		Blocks:     strconv.FormatInt(s.Blocks, 10),
		Headers:    strconv.FormatInt(s.Headers, 10),
		Peers:      strconv.FormatInt(s.Peers, 10),
		Pruned:     FormatBool(s.Pruned),
		Size:       BytesToGB(s.SizeOnDisk),
	}

	d.statusMu.Lock()
	defer d.statusMu.Unlock()
	d.status = view
	d.statusAt = time.Now()
}

func (d *Display) SetBalance(b *Balance) {
	view := BalanceView{
		Value:   FormatRaw(b.Balance),
		Message: b.Message,
	}

	d.balanceMu.Lock()
	defer d.balanceMu.Unlock()
	d.balance = view
	d.balanceAt = time.Now()
}

// SetTransactions replaces the whole list, keeping upstream order and at
// most limit rows.
func (d *Display) SetTransactions(txs *Transactions, limit int) {
	list := txs.Txs
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	rows := make([]TxRow, 0, len(list))
	for _, tx := range list {
		var confirmations int64
		if tx.Confirmations != nil {
			confirmations = *tx.Confirmations
		}
		rows = append(rows, TxRow{
			Time:          FormatTime(tx.Time),
			Category:      tx.Category,
			Amount:        FormatAmount(tx.Amount),
			Confirmations: strconv.FormatInt(confirmations, 10),
			TxID:          tx.TxID,
		})
	}

	d.txsMu.Lock()
	defer d.txsMu.Unlock()
	d.txs = rows
	d.txsAt = time.Now()
}

func (d *Display) Status() StatusView {
	d.statusMu.RLock()
	defer d.statusMu.RUnlock()
	return d.status
}

func (d *Display) Balance() BalanceView {
	d.balanceMu.RLock()
	defer d.balanceMu.RUnlock()
	return d.balance
}

// Transactions returns a copy of the rendered rows.
func (d *Display) Transactions() []TxRow {
	d.txsMu.RLock()
	defer d.txsMu.RUnlock()
	return append([]TxRow(nil), d.txs...)
}

func (d *Display) snapshot() screen {
	s := screen{}

	d.statusMu.RLock()
	s.Status, s.StatusAt = d.status, stamp(d.statusAt)
	d.statusMu.RUnlock()

	d.balanceMu.RLock()
	s.Balance, s.BalanceAt = d.balance, stamp(d.balanceAt)
	d.balanceMu.RUnlock()

	d.txsMu.RLock()
	s.Txs, s.TxsAt = append([]TxRow(nil), d.txs...), stamp(d.txsAt)
	d.txsMu.RUnlock()
	s.TxCount = len(s.Txs)

	return s
}

// Render writes one full frame.
func (d *Display) Render() error {
	s := d.snapshot()

	d.renderMu.Lock()
	defer d.renderMu.Unlock()

	if d.redraw {
		if _, err := io.WriteString(d.out, clearScreen); err != nil {
			return err
		}
	}
	return screenTemplate.Execute(d.out, s)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04:05")
}
