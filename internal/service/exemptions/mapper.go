package exemptions

import (
	"fmt"
	"time"

	"github.com/companieshouse/company-exemptions-api/internal/deltatime"
	"github.com/companieshouse/company-exemptions-api/internal/model"
	"github.com/companieshouse/company-exemptions-api/internal/util"
)

// mapRequest builds a fresh document snapshot from an accepted upsert. Each
// snapshot gets a new etag; created is filled in by the caller.
func mapRequest(companyNumber string, req model.InternalExemptionsRequest, now time.Time) *model.ExemptionsDocument {
	return &model.ExemptionsDocument{
		ID: companyNumber,
		Data: model.CompanyExemptions{
			Etag:       util.NewEtag(),
			Kind:       model.KindExemptions,
			Links:      &model.Links{Self: fmt.Sprintf("/company/%s/exemptions", companyNumber)},
			Exemptions: req.ExternalData.Exemptions,
		},
		DeltaAt: deltatime.Format(req.InternalData.DeltaAt),
		Updated: model.Updated{At: now.UTC(), By: req.InternalData.UpdatedBy},
	}
}
