package model

// KindExemptions is the resource kind stamped onto every exemptions payload.
const KindExemptions = "exemptions"

// Exemption type discriminators, one per category.
const (
	TypePscExemptAsTradingOnRegulatedMarket           = "psc-exempt-as-trading-on-regulated-market"
	TypePscExemptAsSharesAdmittedOnMarket             = "psc-exempt-as-shares-admitted-on-market"
	TypePscExemptAsTradingOnEuRegulatedMarket         = "psc-exempt-as-trading-on-eu-regulated-market"
	TypePscExemptAsTradingOnUkRegulatedMarket         = "psc-exempt-as-trading-on-uk-regulated-market"
	TypeDisclosureTransparencyRulesChapterFiveApplies = "disclosure-transparency-rules-chapter-five-applies"
)

// CompanyExemptions is the public exemptions resource: what GET returns and
// what a deleted notification carries.
type CompanyExemptions struct {
	Etag       string      `json:"etag,omitempty" bson:"etag,omitempty"`
	Kind       string      `json:"kind,omitempty" bson:"kind,omitempty"`
	Links      *Links      `json:"links,omitempty" bson:"links,omitempty"`
	Exemptions *Exemptions `json:"exemptions,omitempty" bson:"exemptions,omitempty"`
}

type Links struct {
	Self string `json:"self,omitempty" bson:"self,omitempty"`
}

// Exemptions groups the exemption categories a company may hold.
type Exemptions struct {
	PscExemptAsTradingOnRegulatedMarket           *Exemption `json:"psc_exempt_as_trading_on_regulated_market,omitempty" bson:"psc_exempt_as_trading_on_regulated_market,omitempty"`
	PscExemptAsSharesAdmittedOnMarket             *Exemption `json:"psc_exempt_as_shares_admitted_on_market,omitempty" bson:"psc_exempt_as_shares_admitted_on_market,omitempty"`
	PscExemptAsTradingOnEuRegulatedMarket         *Exemption `json:"psc_exempt_as_trading_on_eu_regulated_market,omitempty" bson:"psc_exempt_as_trading_on_eu_regulated_market,omitempty"`
	PscExemptAsTradingOnUkRegulatedMarket         *Exemption `json:"psc_exempt_as_trading_on_uk_regulated_market,omitempty" bson:"psc_exempt_as_trading_on_uk_regulated_market,omitempty"`
	DisclosureTransparencyRulesChapterFiveApplies *Exemption `json:"disclosure_transparency_rules_chapter_five_applies,omitempty" bson:"disclosure_transparency_rules_chapter_five_applies,omitempty"`
}

type Exemption struct {
	ExemptionType string          `json:"exemption_type,omitempty" bson:"exemption_type,omitempty"`
	Items         []ExemptionItem `json:"items,omitempty" bson:"items,omitempty"`
}

type ExemptionItem struct {
	ExemptFrom *Date `json:"exempt_from,omitempty" bson:"exempt_from,omitempty"`
	ExemptTo   *Date `json:"exempt_to,omitempty" bson:"exempt_to,omitempty"`
}
