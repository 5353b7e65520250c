package contractdoc

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

/*
 * Stored template bodies use a declarative placeholder grammar and are never
 * evaluated as code: {{name}} substitutes a value from a fixed set, and the
 * conditional blocks {{#signature}}, {{#approval}} and {{#package_included}}
 * keep or drop their content. Anything else passes through untouched, so a
 * hostile template body cannot reach beyond the whitelisted data.
 */

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

var conditionalBlocks = []string{"signature", "approval", "package_included"}

// Interpolate renders a stored template body against the contract data.
func Interpolate(body string, data *ContractData) string {
	out := body

	for _, name := range conditionalBlocks {
		out = applyConditional(out, name, blockEnabled(name, data))
	}

	return placeholderPattern.ReplaceAllStringFunc(out, func(match string) string {
		name := strings.Trim(match, "{}")
		return placeholderValue(name, data)
	})
}

func blockEnabled(name string, data *ContractData) bool {
	switch name {
	case "signature":
		return data.Signature != nil && !data.IncludeSignatureBlock
	case "approval":
		return data.IncludeSignatureBlock
	case "package_included":
		return data.HasIncludedAddon()
	default:
		return false
	}
}

// applyConditional removes either the block markers (enabled) or the whole
// block (disabled). Unclosed blocks are left untouched.
func applyConditional(body, name string, enabled bool) string {
	open := "{{#" + name + "}}"
	close := "{{/" + name + "}}"

	for {
		start := strings.Index(body, open)
		if start < 0 {
			return body
		}

		end := strings.Index(body[start:], close)
		if end < 0 {
			return body
		}
		end += start

		if enabled {
			body = body[:start] + body[start+len(open):end] + body[end+len(close):]
		} else {
			body = body[:start] + body[end+len(close):]
		}
	}
}

func placeholderValue(name string, data *ContractData) string {
	esc := html.EscapeString

	switch name {
	case "contract_number":
		return esc(data.ContractNumber)
	case "contract_type":
		return esc(data.TypeName)
	case "customer_name":
		return esc(data.CustomerName)
	case "customer_email":
		return esc(data.CustomerEmail)
	case "customer_phone":
		return esc(data.CustomerPhone)
	case "package_name":
		return esc(data.PackageName)
	case "start_date":
		return FormatDate(data.StartAt)
	case "end_date":
		return FormatDate(data.EndAt)
	case "created_date":
		return FormatDateTime(data.CreatedAt)
	case "total_ht":
		return FormatMoney(data.Financials.TotalHT)
	case "total_ttc":
		return FormatMoney(data.Financials.TotalTTC)
	case "account_amount":
		return FormatMoney(data.Financials.AccountAmount)
	case "caution_amount":
		return FormatMoney(data.Financials.CautionAmount)
	case "paid_account":
		return FormatMoney(data.Financials.PaidAccount)
	case "paid_caution":
		return FormatMoney(data.Financials.PaidCaution)
	case "deposit_payment_method":
		return esc(data.Financials.DepositPaymentMethod)
	case "dress_list":
		return dressListHTML(data)
	case "addon_list":
		return addonListHTML(data)
	case "signer_ip":
		if data.Signature != nil {
			return esc(data.Signature.SignerIP)
		}
	case "signer_location":
		if data.Signature != nil {
			return esc(data.Signature.Location)
		}
	case "signature_reference":
		if data.Signature != nil {
			return esc(data.Signature.Reference)
		}
	case "signed_date":
		if data.Signature != nil {
			return FormatDateTime(data.Signature.SignedAt)
		}
	}

	// Unknown or unavailable placeholders render empty rather than leaking
	// the raw marker into a legal document.
	return ""
}

func dressListHTML(data *ContractData) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, d := range data.Dresses {
		label := d.Name
		if d.Size != "" {
			label += fmt.Sprintf(" (taille %s)", d.Size)
		}
		sb.WriteString(fmt.Sprintf("<li>%s — %s</li>", html.EscapeString(label), FormatMoney(d.Price)))
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func addonListHTML(data *ContractData) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, a := range data.Addons {
		name := html.EscapeString(a.Name)
		if a.IncludedInPackage && data.PackageInclusionApplies() {
			sb.WriteString(fmt.Sprintf(`<li>%s — <s>%s</s> <span class="badge">inclus au forfait</span></li>`, name, FormatMoney(a.Price)))
		} else {
			sb.WriteString(fmt.Sprintf("<li>%s — %s</li>", name, FormatMoney(a.Price)))
		}
	}
	sb.WriteString("</ul>")
	return sb.String()
}
