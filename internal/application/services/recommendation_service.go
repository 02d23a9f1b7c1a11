package services

import (
	"strings"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

const maxRecommendations = 3

// RecommendationService selects catalog products matching the preferences
// collected during a consultation flow.
type RecommendationService struct {
	productInfo *catalog.ProductInfo
	logger      *logging.ChanneledLogger
}

func NewRecommendationService(productInfo *catalog.ProductInfo, logger *logging.ChanneledLogger) *RecommendationService {
	return &RecommendationService{
		productInfo: productInfo,
		logger:      logger,
	}
}

// FilterByPreferences returns up to three products matching the given level,
// budget bucket and category. Level narrows racket picks: beginners never see
// "pro" models, professionals only see pro models or rackets above €200.
func (s *RecommendationService) FilterByPreferences(level, budget, category string) []catalog.Product {
	matches := make([]catalog.Product, 0, maxRecommendations)

	for _, product := range s.productInfo.Prodotti {
		if product.Category != category {
			continue
		}
		if !matchesBudget(product.Price, budget) {
			continue
		}
		if !matchesLevel(product, level) {
			continue
		}
		matches = append(matches, product)
		if len(matches) == maxRecommendations {
			break
		}
	}

	s.logger.Catalog().Debug("Products filtered",
		"level", level, "budget", budget, "category", category, "matches", len(matches))

	return matches
}

func matchesBudget(price float64, budget string) bool {
	switch budget {
	case "under50":
		return price <= 50
	case "50to100":
		return price > 50 && price <= 100
	case "100to200":
		return price > 100 && price <= 200
	case "over200":
		return price > 200
	}
	return true
}

func matchesLevel(product catalog.Product, level string) bool {
	name := strings.ToLower(product.Name)
	switch level {
	case "principiante":
		return !strings.Contains(name, "pro")
	case "professionale":
		return strings.Contains(name, "pro") || product.Price > 200
	}
	return true
}
