package contractdoc

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates
var templatesFS embed.FS

var builtinFiles = map[ClauseCategory]string{
	ClauseCategoryPackageService: "package_service.html",
	ClauseCategoryDailyRental:    "daily_rental.html",
	ClauseCategoryGeneric:        "generic.html",
}

var builtinFuncs = template.FuncMap{
	"money":    FormatMoney,
	"date":     FormatDate,
	"datetime": FormatDateTime,
}

// RenderBuiltin renders the compiled-in clause set for the data's category.
func RenderBuiltin(data *ContractData) (string, error) {
	file, ok := builtinFiles[data.Category]
	if !ok {
		file = builtinFiles[ClauseCategoryGeneric]
	}

	tmpl, err := template.New(file).Funcs(builtinFuncs).ParseFS(templatesFS, "templates/"+file)
	if err != nil {
		return "", fmt.Errorf("failed to parse builtin template %s: %w", file, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render builtin template %s: %w", file, err)
	}

	return buf.String(), nil
}

// RenderHTML produces the final HTML for a resolved template: builtin clause
// sets go through html/template, stored bodies through the sandboxed
// placeholder pass.
func RenderHTML(resolved *ResolvedTemplate, data *ContractData) (string, error) {
	data.Category = resolved.Category

	if resolved.Builtin {
		return RenderBuiltin(data)
	}

	return Interpolate(resolved.Body, data), nil
}
