package booking

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dasportz/booking-backend/pkg/enums"
	"github.com/dasportz/booking-backend/pkg/money"
)

// ComposeMessage renders an order as the WhatsApp text the store receives.
func ComposeMessage(rules Rules, record *OrderRecord) string {
	service := "Within 4 hours"
	if record.Express {
		service = fmt.Sprintf("Within 1 hour (+%s/%s)", money.Plain(rules.ExpressSurcharge), strings.ToLower(rules.ItemNoun))
	}
	online := "No"
	if record.PaymentMethod.IsOnline() {
		online = fmt.Sprintf("Yes (%s off)", money.Plain(rules.OnlineDiscount))
	}
	pickup := "No"
	if record.PickupDrop {
		pickup = "Yes (porter; charges borne by customer)"
	}
	discount := "No coupon applied"
	if d := record.Payment.Discount; d != nil {
		discount = fmt.Sprintf("Applied coupon %s (-%s)", d.Code, money.Plain(d.Amount))
	}

	lines := []string{
		fmt.Sprintf("New %s Order | DA SPORTZ", serviceTitle(rules)),
		"• Store: " + record.Store,
		"• Name: " + record.CustomerName,
		"• Phone: " + record.Phone,
		"• Service: " + service,
		"• Pickup & Drop: " + pickup,
		"• Payment (online discount applies): " + online,
		"• Discount: " + discount,
		"• Total: " + money.Plain(record.Amount),
		fmt.Sprintf("• %s details:", rules.ItemNoun),
	}
	for _, item := range record.Items() {
		lines = append(lines, itemLine(rules, item))
	}
	return strings.Join(lines, "\n")
}

func serviceTitle(rules Rules) string {
	switch rules.ServiceType {
	case enums.ServiceTypeBatKnocking:
		return "Bat Knocking"
	case enums.ServiceTypeGlovesRepairing:
		return "Gloves Repair"
	}
	return "Stringing"
}

func itemLine(rules Rules, item OrderLine) string {
	image := item.Image
	if image == "" {
		image = "No"
	}
	parts := []string{fmt.Sprintf("%s %d:", rules.ItemNoun, item.Index)}
	switch {
	case item.BatModel != "":
		parts = append(parts, item.BatModel, "| "+item.PackageLabel, "| threading "+item.Threading)
	case item.Make != "":
		parts = append(parts, item.Make, item.Model, "| "+item.NatureOfRepair)
	default:
		name := item.StringName
		if item.Price > 0 {
			name += " (" + money.Plain(item.Price) + ")"
		}
		parts = append(parts, item.Model, "| "+name, fmt.Sprintf("| %d lbs", item.Tension))
	}
	if item.Qty > 1 {
		parts = append(parts, fmt.Sprintf("| x%d", item.Qty))
	}
	parts = append(parts, "| Image: "+image)
	return strings.Join(parts, " ")
}

// ShareLink builds a wa.me link with the text percent-encoded. Spaces become %20.
func ShareLink(baseURL, number, text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return strings.TrimRight(baseURL, "/") + "/" + number + "?text=" + escaped
}
