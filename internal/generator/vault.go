package generator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
)

type vaultText struct {
	issuer     string
	title      string
	paragraphs []string
}

var vaultTexts = map[string]vaultText{
	"Insurance Policy": {
		issuer: "Global Assurance Ltd",
		title:  "Certificate of Insurance",
		paragraphs: []string{
			"This policy certifies that the policyholder named herein is insured against loss, damage, or liability as defined in the attached schedule, subject to the terms, conditions, and exclusions of this policy.",
			"Coverage includes standard liability and property protection. This document serves as evidence of insurance and does not amend, extend, or alter the coverage afforded by the policy listed below.",
			"In the event of a claim, please contact your agent immediately. Failure to report within 30 days may result in denial of coverage.",
		},
	},
	"Tax Filing": {
		issuer: "Department of Revenue",
		title:  "Tax Return Acknowledgement",
		paragraphs: []string{
			"This document serves as confirmation of receipt for the tax return filing for the fiscal period specified below. The tax authority acknowledges that the return has been submitted electronically.",
			"The taxpayer declares that to the best of their knowledge and belief, the information provided is true, correct, and complete. This filing is subject to audit and verification.",
			"Please retain this acknowledgement for your records. Any amendments must be filed within the statutory period.",
		},
	},
	"Tenancy Agreement": {
		issuer: "Prime Estate Agents",
		title:  "Tenancy Agreement",
		paragraphs: []string{
			"This agreement creates a tenancy in respect of the property described in the schedule. The tenant agrees to pay rent on the due date without deduction or set-off.",
			"The landlord agrees to maintain the property in a habitable condition and to respect the tenant's quiet enjoyment of the premises. The tenant is responsible for minor repairs and general upkeep.",
			"Notice of termination must be given in writing at least 60 days prior to the end of the term. This agreement is governed by the laws of the local jurisdiction.",
		},
	},
}

func (g *Generator) vault(p region.Profile, subType string) (document.Record, error) {
	text, ok := vaultTexts[subType]
	if !ok {
		return document.Record{}, fmt.Errorf("%w: no vault text for %q", document.ErrConfiguration, subType)
	}

	return document.Record{
		Kind:        document.KindVault,
		Counterpart: text.issuer,
		Address:     p.Pool.Addresses[0],
		Date:        g.today(),
		Total:       decimal.Zero,
		Tax:         decimal.Zero,
		Body: &document.VaultBody{
			SubType:      subType,
			Title:        text.title,
			Paragraphs:   append([]string(nil), text.paragraphs...),
			PolicyNumber: fmt.Sprintf("REF-%d", g.rnd.IntN(10_000_000)),
			Reference:    fmt.Sprintf("SEC-%d", g.rnd.IntN(1000)),
		},
	}, nil
}
