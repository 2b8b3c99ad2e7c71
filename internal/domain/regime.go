package domain

import (
	"fmt"
	"strings"
)

// Regime identifies one of the modeled Spanish tax/employment statuses
type Regime string

const (
	RegimeEmpleado            Regime = "empleado"
	RegimeAutonomoRegular     Regime = "autonomo_regular"
	RegimeAutonomoTarifaPlana Regime = "autonomo_tarifa_plana"
	RegimeSLMicro             Regime = "sl_micro"
	RegimeSLRegular           Regime = "sl_regular"
	RegimeStartupCertificada  Regime = "startup_certificada"
	RegimeBeckham             Regime = "beckham"
)

// AllRegimes lists every supported regime in display order
func AllRegimes() []Regime {
	return []Regime{
		RegimeEmpleado,
		RegimeAutonomoRegular,
		RegimeAutonomoTarifaPlana,
		RegimeSLMicro,
		RegimeSLRegular,
		RegimeStartupCertificada,
		RegimeBeckham,
	}
}

var regimeNames = map[Regime]string{
	RegimeEmpleado:            "Empleado",
	RegimeAutonomoRegular:     "Autónomo Regular",
	RegimeAutonomoTarifaPlana: "Autónomo Tarifa Plana",
	RegimeSLMicro:             "SL Microempresa",
	RegimeSLRegular:           "SL Regular",
	RegimeStartupCertificada:  "Startup Certificada",
	RegimeBeckham:             "Régimen Beckham",
}

// IsValid reports whether r is a known regime
func (r Regime) IsValid() bool {
	_, ok := regimeNames[r]
	return ok
}

// DisplayName returns the human-readable regime name
func (r Regime) DisplayName() string {
	if name, ok := regimeNames[r]; ok {
		return name
	}
	return string(r)
}

// IsCompany reports whether the regime is taxed through a limited company
func (r Regime) IsCompany() bool {
	return r == RegimeSLMicro || r == RegimeSLRegular || r == RegimeStartupCertificada
}

// ParseRegime converts a string into a Regime. Matching is case-insensitive and
// accepts dashes in place of underscores.
func ParseRegime(s string) (Regime, bool) {
	r := Regime(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	return r, r.IsValid()
}

// ParseRegimeList parses a comma-separated list of regimes. The keyword "all"
// expands to every regime.
func ParseRegimeList(list string) ([]Regime, error) {
	var regimes []Regime
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			return AllRegimes(), nil
		}
		r, ok := ParseRegime(part)
		if !ok {
			return nil, fmt.Errorf("unknown regime %q", part)
		}
		regimes = append(regimes, r)
	}
	return regimes, nil
}

// Community is a Spanish autonomous community with its own IRPF scale
type Community string

const (
	CommunityMadrid    Community = "madrid"
	CommunityCatalunya Community = "catalunya"
	CommunityValencia  Community = "valencia"
)

var communityNames = map[Community]string{
	CommunityMadrid:    "Madrid",
	CommunityCatalunya: "Catalunya",
	CommunityValencia:  "Valencia",
}

// AllCommunities lists the supported communities
func AllCommunities() []Community {
	return []Community{CommunityMadrid, CommunityCatalunya, CommunityValencia}
}

// IsValid reports whether c is a known community
func (c Community) IsValid() bool {
	_, ok := communityNames[c]
	return ok
}

// DisplayName returns the human-readable community name
func (c Community) DisplayName() string {
	if name, ok := communityNames[c]; ok {
		return name
	}
	return string(c)
}

// MaritalStatus drives the joint filing reduction
type MaritalStatus string

const (
	MaritalSingle       MaritalStatus = "soltero"
	MaritalMarried      MaritalStatus = "casado"
	MaritalSingleParent MaritalStatus = "con_hijos"
)

// AllMaritalStatuses lists the supported statuses
func AllMaritalStatuses() []MaritalStatus {
	return []MaritalStatus{MaritalSingle, MaritalMarried, MaritalSingleParent}
}

// IsValid reports whether m is a known marital status
func (m MaritalStatus) IsValid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalSingleParent:
		return true
	}
	return false
}

// DisplayName returns the human-readable status
func (m MaritalStatus) DisplayName() string {
	switch m {
	case MaritalSingle:
		return "Single"
	case MaritalMarried:
		return "Married (joint filing)"
	case MaritalSingleParent:
		return "Single parent"
	}
	return string(m)
}
