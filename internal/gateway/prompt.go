package gateway

import (
	"fmt"
	"strings"

	"github.com/guttosm/blend-service/internal/domain/model"
)

var categoryHints = map[model.Category]string{
	model.CategoryConcentrate:   "Juice concentrates: sugar 40-70 °Bx, pH 2.5-4.5, acidity 1-8 %, price 3000-15000 per kg. Example: orange concentrate 65 °Bx has sugar 65 and sugar_coeff 0.65.",
	model.CategoryPuree:         "Fruit purees: sugar 8-15 °Bx, pH 3.0-4.5, price 2000-8000 per kg.",
	model.CategorySugar:         "Sugars: sugar 65-100 °Bx, sweetness 0.4-1.8. Example: sucrose has sugar 100, sweetness 1.0, sugar_coeff 1.0, sweetness_coeff 0.01.",
	model.CategorySyrup:         "Syrups: sugar 65-80 °Bx, sweetness 0.4-1.2. Example: HFCS55 has sugar 77, sweetness 1.1, sugar_coeff 0.77.",
	model.CategorySweetener:     "Sweeteners: sugar 65-100 °Bx, sweetness 0.4-1.8.",
	model.CategoryHighIntensity: "High-intensity sweeteners: sweetness 100-600. Example: sucralose has sweetness 600 and sweetness_coeff 6.0.",
	model.CategoryAcidulant:     "Acidulants: ph_delta is negative. Example: citric acid has ph_delta -0.40.",
}

// Prompt builds the instruction text sent with an estimation request.
func Prompt(name string, hint model.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Material: %s\n", name)
	if hint != model.CategoryUnknown {
		fmt.Fprintf(&b, "Category: %s\n", hint)
	}
	b.WriteString("\nReference ranges:\n")
	if h, ok := categoryHints[hint]; ok {
		b.WriteString("- " + h + "\n")
	} else {
		for _, c := range []model.Category{model.CategoryConcentrate, model.CategorySugar, model.CategoryHighIntensity, model.CategoryAcidulant} {
			b.WriteString("- " + categoryHints[c] + "\n")
		}
	}
	b.WriteString("\nsugar_coeff = sugar / 100 and sweetness_coeff = sweetness / 100.\n")
	b.WriteString("Concentrates, purees, sugars and syrups must have sugar and sweetness greater than 0.\n")
	b.WriteString(`Respond with JSON only: {"sugar": 0, "ph": 0, "acidity": 0, "sweetness": 0, "price": 0, ` +
		`"sugar_coeff": 0, "ph_delta": 0, "acidity_coeff": 0, "sweetness_coeff": 0}`)
	return b.String()
}
