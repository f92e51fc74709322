package catalog

import (
	"sort"
	"time"

	"doggy-daycare/internal/platform/apperr"
)

// pickRedeemable elige el pase a consumir: entre los no vencidos en today,
// el de vencimiento más próximo (sin vencimiento al final), luego el más
// antiguo, que tenga créditos.
func pickRedeemable(pkgs []ClientPackage, today time.Time) (ClientPackage, error) {
	active := make([]ClientPackage, 0, len(pkgs))
	for _, p := range pkgs {
		if p.ActiveOn(today) {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return ClientPackage{}, apperr.Validation("Client has no available package credits")
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		return a.PurchaseDate.Before(b.PurchaseDate)
	})

	for _, p := range active {
		if p.RemainingCredits > 0 {
			return p, nil
		}
	}
	return ClientPackage{}, apperr.Validation("Selected package has no remaining credits")
}
