// Package reply renders outbound chat texts: menu and stock listings, the
// order invoice, and the fixed fallback messages. Rendering is a pure
// projection of the data; the invoice stays parseable by inspection.
package reply

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"warunggo/internal/domain"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats a whole-rupiah amount with Indonesian digit grouping,
// e.g. 10000 -> "Rp 10.000".
func Rupiah(amount int) string {
	return printer.Sprintf("Rp %d", amount)
}

// DisplayName turns a catalog key back into a human-readable item name.
func DisplayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func title(s string) string {
	return "*" + s + "*"
}

// Menu renders the catalog as a numbered list in snapshot order.
func Menu(snap domain.Snapshot) string {
	if len(snap.Keys) == 0 {
		return title("Menu WarungGo") + "\nBelum ada data menu. Jalankan /sync untuk menarik data dari Google Sheets."
	}
	var b strings.Builder
	b.WriteString(title("Menu WarungGo"))
	for i, key := range snap.Keys {
		fmt.Fprintf(&b, "\n%d. %s — %s", i+1, DisplayName(key), Rupiah(snap.Menu[key]))
	}
	return b.String()
}

// Inventory renders the stock ledger as a numbered list in snapshot order.
func Inventory(snap domain.Snapshot) string {
	if len(snap.Keys) == 0 {
		return title("Stok WarungGo") + "\nBelum ada data stok. Jalankan /sync terlebih dahulu."
	}
	var b strings.Builder
	b.WriteString(title("Stok WarungGo"))
	for i, key := range snap.Keys {
		fmt.Fprintf(&b, "\n%d. %s — %d pcs", i+1, DisplayName(key), snap.Stock[key])
	}
	return b.String()
}

// Invoice renders accepted order lines with per-line pricing and the grand
// total. customer is the display form of the sender, may be empty.
func Invoice(lines []domain.ValidatedLine, total int, customer string) string {
	if customer == "" {
		customer = "tanpa nomor"
	}
	var b strings.Builder
	b.WriteString(title("Invoice Sementara"))
	fmt.Fprintf(&b, "\nPelanggan: %s", customer)
	for i, line := range lines {
		fmt.Fprintf(&b, "\n%d. %s x%d — %s = %s",
			i+1, DisplayName(line.ItemKey), line.Quantity, Rupiah(line.UnitPrice), Rupiah(line.Subtotal))
	}
	fmt.Fprintf(&b, "\n\nTotal: %s", Rupiah(total))
	return b.String()
}

func Fallback() string {
	return `Maaf, WarungGo belum paham pesanan kamu. Coba tulis seperti "pesan 2 indomie" atau minta bantuan owner.`
}

func EmptyCatalog() string {
	return "Menu belum siap. Hubungi owner atau coba lagi nanti."
}

func OutOfStock(itemKey string) string {
	return fmt.Sprintf("Stok %s sedang habis.", DisplayName(itemKey))
}

func InsufficientStock(itemKey string, available int) string {
	return fmt.Sprintf("Stok %s tinggal %d. Mohon kurangi jumlah pesanan.", DisplayName(itemKey), available)
}

// ForOutcome maps a resolution outcome to the single reply text sent back
// to the conversation.
func ForOutcome(o domain.Outcome, customer string) string {
	switch o.Kind {
	case domain.OutcomeResolved:
		return Invoice(o.Lines, o.Total, customer)
	case domain.OutcomeOutOfStock:
		return OutOfStock(o.ItemKey)
	case domain.OutcomeInsufficientStock:
		return InsufficientStock(o.ItemKey, o.Available)
	case domain.OutcomeEmptyCatalog:
		return EmptyCatalog()
	default:
		return Fallback()
	}
}

func OwnerHelp() string {
	return title("Owner Commands") +
		"\n/menu — lihat daftar menu" +
		"\n/stok — lihat stok terbaru" +
		"\n/sync — tarik data menu + stok dari Google Sheets" +
		"\n/help — tampilkan bantuan ini"
}

func SyncStarted() string {
	return "Sinkronisasi menu & stok dari Google Sheets..."
}

func SyncFailed() string {
	return "Gagal sinkronisasi. Cek credentials / koneksi."
}

func UnknownCommand() string {
	return "Perintah tidak dikenali. Kirim /help untuk melihat daftar perintah."
}
