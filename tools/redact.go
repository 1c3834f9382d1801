package tools

import (
	"regexp"
	"strings"
)

// Redação de PII antes de qualquer texto sair do sistema (vendor de IA) e
// antes de persistir rationales que a IA possa ter ecoado.
//
// Abordagem: padrões de regex best-effort (e-mail, telefone, nome, lugar).
// Os placeholders são estáveis e mantêm a estrutura da frase, então a IA
// ainda consegue raciocinar sobre o texto. Falso negativo é tolerado;
// a redação nunca falha um request.

const PLACEHOLDER_EMAIL = "[EMAIL]"
const PLACEHOLDER_PHONE = "[PHONE]"
const PLACEHOLDER_NAME = "[NAME]"
const PLACEHOLDER_LOCATION = "[LOCATION]"

var (
	// mesmo charset do ValidateEmail
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// sequências tipo telefone; só redige se tiver 8+ dígitos, para não
	// engolir valores monetários curtos
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)

	// "Mr. Smith", "Dr. Jane Doe"
	honorificNamePattern = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`)

	// "my name is John", "I'm Jane Doe" - mantém o lead-in, troca o nome
	leadInNamePattern = regexp.MustCompile(`\b((?i:my name is|i am|i'm|this is|call me))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)

	// "in Seattle", "near New York", "from Lisbon"
	locationPattern = regexp.MustCompile(`\b((?i:in|near|from))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
)

// palavras capitalizadas que vêm depois de "in/near/from" sem serem lugares
var locationStopwords = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Redact substitui PII reconhecível por placeholders estáveis.
// Idempotente: Redact(Redact(x)) == Redact(x). Entrada vazia ou sem matches
// volta inalterada.
func Redact(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := emailPattern.ReplaceAllString(text, PLACEHOLDER_EMAIL)

	out = phonePattern.ReplaceAllStringFunc(out, func(match string) string {
		digits := 0
		for _, r := range match {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 8 {
			return match
		}
		return PLACEHOLDER_PHONE
	})

	out = honorificNamePattern.ReplaceAllString(out, PLACEHOLDER_NAME)
	out = leadInNamePattern.ReplaceAllString(out, "$1 "+PLACEHOLDER_NAME)

	out = locationPattern.ReplaceAllStringFunc(out, func(match string) string {
		sub := locationPattern.FindStringSubmatch(match)
		if len(sub) != 3 {
			return match
		}
		if locationStopwords[strings.ToLower(sub[2])] {
			return match
		}
		return sub[1] + " " + PLACEHOLDER_LOCATION
	})

	return out
}
