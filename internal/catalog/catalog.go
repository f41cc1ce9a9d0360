// Package catalog provides candidate-product sources for the pipeline. The
// built-in synthetic source derives a deterministic competitor batch from the
// reference product's price, so runs are reproducible without any network.
package catalog

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/shopintel/competitor-xray/internal/model"
)

// referenceProducts are the built-in products a run can be anchored on.
var referenceProducts = []model.Product{
	{ASIN: "B07FVTJWWF", Title: "Hydro Flask 32oz Wide Mouth Water Bottle", Price: 44.95, Rating: 4.8, Reviews: 52341, Category: "Water Bottles"},
	{ASIN: "B08JQN4JJN", Title: "YETI Rambler 26oz Bottle with Chug Cap", Price: 40.00, Rating: 4.7, Reviews: 28934, Category: "Water Bottles"},
	{ASIN: "B07RNXY24P", Title: "Stanley Classic Trigger-Action Travel Mug 20oz", Price: 25.00, Rating: 4.6, Reviews: 18234, Category: "Travel Mugs"},
	{ASIN: "B09NVBLP3G", Title: "Owala FreeSip Stainless Steel Water Bottle 24oz", Price: 27.99, Rating: 4.7, Reviews: 45678, Category: "Water Bottles"},
	{ASIN: "B08QZBN2BH", Title: "CamelBak Eddy+ Vacuum Insulated 25oz", Price: 34.00, Rating: 4.5, Reviews: 12345, Category: "Water Bottles"},
}

// ReferenceProducts returns a copy of the built-in reference products.
func ReferenceProducts() []model.Product {
	out := make([]model.Product, len(referenceProducts))
	copy(out, referenceProducts)
	return out
}

// FindReference returns the built-in reference product with the given ASIN.
func FindReference(asin string) (model.Product, error) {
	for _, p := range referenceProducts {
		if p.ASIN == asin {
			return p, nil
		}
	}
	return model.Product{}, eris.Errorf("catalog: no reference product with asin %s", asin)
}

// SyntheticSource generates the standard 50-product competitor batch:
// 15 plausible competitors, 20 low-quality items, 10 accessories, and
// 5 premium products, all priced relative to the reference. A rate limiter
// paces fetches so a misbehaving caller cannot spin the generator.
type SyntheticSource struct {
	limiter *rate.Limiter
}

// NewSyntheticSource creates a paced synthetic candidate source.
func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{limiter: rate.NewLimiter(rate.Limit(20), 5)}
}

func (s *SyntheticSource) FetchCandidates(ctx context.Context, ref model.Product) ([]model.Product, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "catalog: wait for rate limiter")
	}

	base := ref.Price
	batch := make([]model.Product, 0, 50)

	// Plausible competitors: in-band prices, solid ratings and review counts.
	batch = append(batch,
		model.Product{ASIN: "C001", Title: "ThermoFlask 32oz Insulated Stainless Steel", Price: base * 0.8, Rating: 4.6, Reviews: 8932, Category: "Water Bottles"},
		model.Product{ASIN: "C002", Title: "Simple Modern Summit 32oz Water Bottle", Price: base * 0.7, Rating: 4.7, Reviews: 15234, Category: "Water Bottles"},
		model.Product{ASIN: "C003", Title: "Iron Flask Sports Water Bottle 32oz", Price: base * 0.65, Rating: 4.5, Reviews: 22341, Category: "Water Bottles"},
		model.Product{ASIN: "C004", Title: "Contigo Autoseal Chill 24oz", Price: base * 0.55, Rating: 4.4, Reviews: 9876, Category: "Water Bottles"},
		model.Product{ASIN: "C005", Title: "Takeya Actives Insulated 32oz", Price: base * 0.9, Rating: 4.6, Reviews: 7654, Category: "Water Bottles"},
		model.Product{ASIN: "C006", Title: "Klean Kanteen Classic 27oz", Price: base * 0.75, Rating: 4.5, Reviews: 5432, Category: "Water Bottles"},
		model.Product{ASIN: "C007", Title: "Nalgene Wide Mouth 32oz BPA-Free", Price: base * 0.4, Rating: 4.7, Reviews: 34567, Category: "Water Bottles"},
		model.Product{ASIN: "C008", Title: "Zojirushi Stainless Steel Mug 20oz", Price: base * 0.85, Rating: 4.8, Reviews: 4321, Category: "Water Bottles"},
		model.Product{ASIN: "C009", Title: "Polar Bottle Sport Insulated 24oz", Price: base * 0.5, Rating: 4.3, Reviews: 2345, Category: "Water Bottles"},
		model.Product{ASIN: "C010", Title: "CamelBak Chute Mag 32oz", Price: base * 0.6, Rating: 4.5, Reviews: 6789, Category: "Water Bottles"},
		model.Product{ASIN: "C011", Title: "Thermos Stainless King 24oz", Price: base * 0.7, Rating: 4.4, Reviews: 3456, Category: "Water Bottles"},
		model.Product{ASIN: "C012", Title: "Mira Stainless Steel Vacuum 32oz", Price: base * 0.55, Rating: 4.3, Reviews: 8765, Category: "Water Bottles"},
		model.Product{ASIN: "C013", Title: "S'well Triple-Layered 25oz", Price: base * 1.1, Rating: 4.6, Reviews: 12345, Category: "Water Bottles"},
		model.Product{ASIN: "C014", Title: "Fifty/Fifty Vacuum Insulated 34oz", Price: base * 0.65, Rating: 4.4, Reviews: 2134, Category: "Water Bottles"},
		model.Product{ASIN: "C015", Title: "EcoVessel Summit Triple Insulated 24oz", Price: base * 0.8, Rating: 4.5, Reviews: 1876, Category: "Water Bottles"},
	)

	// Low-quality items: cheap, poorly rated, thin review histories.
	batch = append(batch,
		model.Product{ASIN: "L001", Title: "Generic Plastic Water Bottle 16oz", Price: base * 0.15, Rating: 3.2, Reviews: 45, Category: "Water Bottles"},
		model.Product{ASIN: "L002", Title: "Budget Sport Bottle 20oz", Price: base * 0.2, Rating: 3.5, Reviews: 78, Category: "Water Bottles"},
		model.Product{ASIN: "L003", Title: "No-Name Steel Bottle 24oz", Price: base * 0.25, Rating: 3.1, Reviews: 23, Category: "Water Bottles"},
		model.Product{ASIN: "L004", Title: "Cheap Insulated Flask 32oz", Price: base * 0.18, Rating: 2.9, Reviews: 156, Category: "Water Bottles"},
		model.Product{ASIN: "L005", Title: "Dollar Store Water Container", Price: base * 0.1, Rating: 2.5, Reviews: 12, Category: "Water Bottles"},
		model.Product{ASIN: "L006", Title: "Basic Aluminum Bottle 20oz", Price: base * 0.22, Rating: 3.4, Reviews: 89, Category: "Water Bottles"},
		model.Product{ASIN: "L007", Title: "Economy Plastic Jug 1L", Price: base * 0.12, Rating: 3.0, Reviews: 34, Category: "Water Bottles"},
		model.Product{ASIN: "L008", Title: "Unbranded Sports Flask", Price: base * 0.28, Rating: 3.6, Reviews: 67, Category: "Water Bottles"},
		model.Product{ASIN: "L009", Title: "Clearance Bin Bottle 24oz", Price: base * 0.15, Rating: 2.8, Reviews: 19, Category: "Water Bottles"},
		model.Product{ASIN: "L010", Title: "Bulk Pack Water Bottle Set", Price: base * 0.3, Rating: 3.3, Reviews: 234, Category: "Water Bottles"},
		model.Product{ASIN: "L011", Title: "Flimsymax Ultra Light 18oz", Price: base * 0.2, Rating: 3.7, Reviews: 56, Category: "Water Bottles"},
		model.Product{ASIN: "L012", Title: "QuickMart House Brand 22oz", Price: base * 0.18, Rating: 3.2, Reviews: 41, Category: "Water Bottles"},
		model.Product{ASIN: "L013", Title: "Import Special Steel 26oz", Price: base * 0.25, Rating: 2.7, Reviews: 28, Category: "Water Bottles"},
		model.Product{ASIN: "L014", Title: "Gas Station Promo Bottle", Price: base * 0.08, Rating: 2.4, Reviews: 8, Category: "Water Bottles"},
		model.Product{ASIN: "L015", Title: "Warehouse Club 3-Pack", Price: base * 0.35, Rating: 3.5, Reviews: 178, Category: "Water Bottles"},
		model.Product{ASIN: "L016", Title: "AmazonBasics Water Bottle", Price: base * 0.3, Rating: 3.8, Reviews: 89, Category: "Water Bottles"},
		model.Product{ASIN: "L017", Title: "Discount Steel Thermos", Price: base * 0.22, Rating: 3.4, Reviews: 45, Category: "Water Bottles"},
		model.Product{ASIN: "L018", Title: "Party Favor Bottles 10pk", Price: base * 0.05, Rating: 2.1, Reviews: 15, Category: "Water Bottles"},
		model.Product{ASIN: "L019", Title: "School Fundraiser Bottle", Price: base * 0.2, Rating: 3.6, Reviews: 92, Category: "Water Bottles"},
		model.Product{ASIN: "L020", Title: "Budget King Flask 28oz", Price: base * 0.28, Rating: 3.3, Reviews: 67, Category: "Water Bottles"},
	)

	// Accessories: well-reviewed but in the wrong category.
	batch = append(batch,
		model.Product{ASIN: "A001", Title: "Bottle Brush Cleaning Kit 3-Pack", Price: 9.99, Rating: 4.5, Reviews: 2345, Category: "Accessories"},
		model.Product{ASIN: "A002", Title: "Replacement Lid for Wide Mouth", Price: 8.99, Rating: 4.2, Reviews: 1234, Category: "Accessories"},
		model.Product{ASIN: "A003", Title: "Paracord Bottle Carrier Strap", Price: 12.99, Rating: 4.4, Reviews: 876, Category: "Accessories"},
		model.Product{ASIN: "A004", Title: "Insulated Bottle Sleeve 32oz", Price: 14.99, Rating: 4.3, Reviews: 543, Category: "Accessories"},
		model.Product{ASIN: "A005", Title: "Straw Lid Replacement Set", Price: 11.99, Rating: 4.1, Reviews: 432, Category: "Accessories"},
		model.Product{ASIN: "A006", Title: "Bottle Drying Rack Stand", Price: 19.99, Rating: 4.6, Reviews: 765, Category: "Accessories"},
		model.Product{ASIN: "A007", Title: "Carabiner Clip for Bottles", Price: 5.99, Rating: 4.0, Reviews: 321, Category: "Accessories"},
		model.Product{ASIN: "A008", Title: "Silicone Boot Protector", Price: 7.99, Rating: 4.3, Reviews: 654, Category: "Accessories"},
		model.Product{ASIN: "A009", Title: "Cleaning Tablets 24-Pack", Price: 10.99, Rating: 4.5, Reviews: 1098, Category: "Accessories"},
		model.Product{ASIN: "A010", Title: "Flip Lid Conversion Kit", Price: 13.99, Rating: 4.2, Reviews: 234, Category: "Accessories"},
	)

	// Premium products: great ratings, priced out of the band.
	batch = append(batch,
		model.Product{ASIN: "P001", Title: "YETI Rambler One Gallon Jug", Price: base * 2.5, Rating: 4.9, Reviews: 3456, Category: "Water Bottles"},
		model.Product{ASIN: "P002", Title: "Hydro Flask Trail Series 32oz", Price: base * 2.2, Rating: 4.8, Reviews: 1234, Category: "Water Bottles"},
		model.Product{ASIN: "P003", Title: "Corkcicle Luxe Copper 25oz", Price: base * 2.8, Rating: 4.7, Reviews: 876, Category: "Water Bottles"},
		model.Product{ASIN: "P004", Title: "Miir Howler 64oz Growler", Price: base * 3.0, Rating: 4.6, Reviews: 543, Category: "Water Bottles"},
		model.Product{ASIN: "P005", Title: "BKR Glass + Silicone Limited Ed", Price: base * 2.4, Rating: 4.5, Reviews: 321, Category: "Water Bottles"},
	)

	return batch, nil
}
