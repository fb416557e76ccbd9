package services

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lead-insights/backend/internal/models"
	"github.com/lead-insights/backend/internal/store"
)

// AccountService manages customers, the selected-customer pointer, platform
// integrations, and stored assets.
type AccountService struct {
	store *store.Store
	log   *zap.Logger
}

func NewAccountService(store *store.Store, log *zap.Logger) *AccountService {
	return &AccountService{store: store, log: log}
}

// CustomerInput carries the fields accepted when creating a customer.
type CustomerInput struct {
	Name              string
	Industry          string
	Tier              string
	Website           string
	Location          string
	DefaultOffer      string
	DefaultAudience   string
	DefaultLandingURL string
	CustomerNotes     string
}

// CreateCustomer adds a customer and selects it. Names are unique, compared
// case-insensitively.
func (s *AccountService) CreateCustomer(in CustomerInput) (*models.Document, string, error) {
	name := models.CleanText(in.Name)
	industry := models.CleanText(in.Industry)
	if name == "" || industry == "" {
		return nil, "", invalid("name and industry are required.")
	}

	doc, err := s.store.Update(func(doc *models.Document) error {
		for _, existing := range doc.Customers {
			if strings.EqualFold(existing.Name, name) {
				return conflict("Customer already exists.")
			}
		}

		customer := models.NormalizeCustomer(models.Customer{
			ID:                models.NewID("cust"),
			Name:              name,
			Industry:          industry,
			Tier:              in.Tier,
			Website:           in.Website,
			Location:          in.Location,
			DefaultOffer:      in.DefaultOffer,
			DefaultAudience:   in.DefaultAudience,
			DefaultLandingURL: in.DefaultLandingURL,
			CustomerNotes:     in.CustomerNotes,
		}, "")
		doc.Customers = append(doc.Customers, customer)
		doc.SelectedCustomerID = customer.ID
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info("customer created", zap.String("name", name))
	return doc, name + " added.", nil
}

// SelectCustomer moves the selected-customer pointer.
func (s *AccountService) SelectCustomer(customerID string) (*models.Document, string, error) {
	customerID = models.CleanText(customerID)
	if customerID == "" {
		return nil, "", invalid("customerId is required.")
	}

	doc, err := s.store.Update(func(doc *models.Document) error {
		if doc.CustomerByID(customerID) == nil {
			return notFound("Customer not found.")
		}
		doc.SelectedCustomerID = customerID
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, "Selection updated.", nil
}

// IntegrationInput carries the connect request fields. TokenHint is masked
// before it is stored; the raw value is never persisted.
type IntegrationInput struct {
	AccountName string
	AccountID   string
	BusinessID  string
	TokenHint   string
}

// ConnectIntegration marks a platform as connected, keeping the first
// connect timestamp across reconnects.
func (s *AccountService) ConnectIntegration(platform string, in IntegrationInput) (*models.Document, string, error) {
	key := models.PlatformKey(platform)
	if key == "" {
		return nil, "", notFound("Unsupported integration platform.")
	}

	doc, err := s.store.Update(func(doc *models.Document) error {
		integration := doc.Integrations.ByPlatform(key)
		now := time.Now().UTC().Format(time.RFC3339)

		integration.Connected = true
		integration.AccountName = models.CleanText(in.AccountName)
		integration.AccountID = models.CleanText(in.AccountID)
		integration.BusinessID = models.CleanText(in.BusinessID)
		if hint := models.CleanText(in.TokenHint); hint != "" {
			integration.TokenMask = models.MaskCredential(hint)
		}
		if integration.ConnectedAt == "" {
			integration.ConnectedAt = now
		}
		integration.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info("integration connected", zap.String("platform", key))
	return doc, models.PlatformLabel(key) + " connection saved.", nil
}

// DisconnectIntegration clears the connected flag and the stored token mask.
func (s *AccountService) DisconnectIntegration(platform string) (*models.Document, string, error) {
	key := models.PlatformKey(platform)
	if key == "" {
		return nil, "", notFound("Unsupported integration platform.")
	}

	doc, err := s.store.Update(func(doc *models.Document) error {
		integration := doc.Integrations.ByPlatform(key)
		integration.Connected = false
		integration.TokenMask = ""
		integration.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info("integration disconnected", zap.String("platform", key))
	return doc, models.PlatformLabel(key) + " disconnected.", nil
}

// AssetInput carries the fields accepted when storing an asset.
type AssetInput struct {
	CustomerID string
	Type       string
	URL        string
	Notes      string
}

// AddAsset stores a marketing artifact for a customer and selects that
// customer. Either a URL or notes must be present.
func (s *AccountService) AddAsset(in AssetInput) (*models.Document, string, error) {
	customerID := models.CleanText(in.CustomerID)
	if customerID == "" {
		return nil, "", invalid("customerId is required.")
	}
	url := models.CleanText(in.URL)
	notes := models.CleanText(in.Notes)
	if url == "" && notes == "" {
		return nil, "", invalid("Provide url or notes.")
	}

	doc, err := s.store.Update(func(doc *models.Document) error {
		if doc.CustomerByID(customerID) == nil {
			return notFound("Customer not found.")
		}

		assetType := models.CleanText(in.Type)
		if assetType == "" {
			assetType = "VSL"
		}
		asset := models.Asset{
			ID:         models.NewID("asset"),
			CustomerID: customerID,
			Type:       assetType,
			URL:        url,
			Notes:      notes,
		}
		doc.Assets = append([]models.Asset{asset}, doc.Assets...)
		doc.SelectedCustomerID = customerID
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, "Asset stored.", nil
}
