package normalize

import (
	"strings"
)

// locationCodes maps known assignment-group names to short display codes.
// Keys are exact (case-insensitive) matches only; substring matching would
// be too aggressive for free-form group names.
var locationCodes = map[string]string{
	"service desk":                 "SD",
	"central de serviços":          "SD",
	"central de servicos":          "SD",
	"field services":               "FS",
	"suporte local":                "FS",
	"suporte presencial":           "FS",
	"network operations":           "NOC",
	"operações de rede":            "NOC",
	"operacoes de rede":            "NOC",
	"infrastructure":               "INFRA",
	"infraestrutura":               "INFRA",
	"database administration":      "DBA",
	"administração de banco":       "DBA",
	"administracao de banco":       "DBA",
	"information security":         "SEC",
	"segurança da informação":      "SEC",
	"seguranca da informacao":      "SEC",
	"application support":          "APP",
	"sustentação de aplicações":    "APP",
	"sustentacao de aplicacoes":    "APP",
}

// CanonicalLocation canonicalizes a raw assignment-group or location name
// to its short display code. Unknown inputs pass through unchanged; an
// un-abbreviated group is not an error.
func CanonicalLocation(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if code, ok := locationCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return trimmed
}
