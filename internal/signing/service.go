package signing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/contract"
	"github.com/narith-dev/RentSign/internal/errs"
	"github.com/narith-dev/RentSign/internal/geo"
	"github.com/narith-dev/RentSign/internal/model"
	"github.com/narith-dev/RentSign/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const signLinkTokenLength = 32

// ContractStore is the slice of contract persistence the signing flow needs.
type ContractStore interface {
	GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Contract, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status constant.ContractStatus) error
	MarkSignedElectronically(ctx context.Context, tx *gorm.DB, id string, signedAt time.Time, ip, location, reference string) error
}

type LinkStore interface {
	Create(ctx context.Context, tx *gorm.DB, link *model.SignLink) (*model.SignLink, error)
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*model.SignLink, error)
	DeleteByContractId(ctx context.Context, tx *gorm.DB, contractId string) error
	DeleteById(ctx context.Context, tx *gorm.DB, id string) error
}

// Notifier publishes the side effects of the signing flow: the signature
// request mail when a link is issued and the document generation job when a
// contract is signed. Both run through the message broker.
type Notifier interface {
	SignRequestIssued(ctx context.Context, c *model.Contract, signURL string) error
	ContractSigned(ctx context.Context, contractId string) error
	GenerateDocument(ctx context.Context, contractId string, manual bool) error
}

type Service struct {
	contracts ContractStore
	links     LinkStore
	geo       geo.Lookup
	notifier  Notifier
	cfg       config.SignLinkConfig
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewService(contracts ContractStore, links LinkStore, geoLookup geo.Lookup, notifier Notifier, cfg config.SignLinkConfig, logger *zap.SugaredLogger) *Service {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Service{
		contracts: contracts,
		links:     links,
		geo:       geoLookup,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// IssuedLink is what the operator gets back after requesting a signature.
type IssuedLink struct {
	Link *model.SignLink `json:"link"`
	// Front-end URL the customer opens to review and sign.
	URL string `json:"url"`
	// Address the signature request mail went to.
	EmailSentTo string `json:"emailSentTo"`
}

func (s *Service) signURL(token string) string {
	return fmt.Sprintf("%s/sign/%s", s.cfg.FRONT_URL, token)
}

// Issue creates a fresh signature link for the contract, invalidating any
// earlier one so at most a single live link exists, and moves the contract
// to PENDING_SIGNATURE. The signer is notified by mail.
func (s *Service) Issue(ctx context.Context, contractId string) (*IssuedLink, error) {
	c, err := s.contracts.GetById(ctx, nil, contractId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("contract not found")
		}
		return nil, errs.Upstream("failed to load contract", err)
	}

	next, err := contract.Transition(c, contract.ActionIssueLink)
	if err != nil {
		return nil, err
	}

	token, err := util.GenerateNChar(signLinkTokenLength)
	if err != nil {
		return nil, errs.Upstream("failed to generate sign link token", err)
	}

	if err := s.links.DeleteByContractId(ctx, nil, c.ID); err != nil {
		return nil, errs.Upstream("failed to invalidate previous sign links", err)
	}

	link, err := s.links.Create(ctx, nil, &model.SignLink{
		Token:      token,
		ContractID: c.ID,
		CustomerID: c.CustomerID,
		ExpiresAt:  s.now().Add(s.cfg.TTL),
	})
	if err != nil {
		return nil, errs.Upstream("failed to create sign link", err)
	}

	if err := s.contracts.UpdateStatus(ctx, nil, c.ID, next); err != nil {
		return nil, errs.Upstream("failed to update contract status", err)
	}

	url := s.signURL(token)
	if err := s.notifier.SignRequestIssued(ctx, c, url); err != nil {
		// The link is live either way, the operator can still share the URL.
		s.logger.Warnf("Failed to enqueue sign request mail for contract %s: %v", c.ID, err)
	}

	return &IssuedLink{Link: link, URL: url, EmailSentTo: c.CustomerEmail()}, nil
}

// Resolve returns the link with its contract aggregate so the signer can
// review what they are about to sign. Unknown and expired tokens are
// distinct failures.
func (s *Service) Resolve(ctx context.Context, token string) (*model.SignLink, error) {
	link, err := s.links.GetByToken(ctx, nil, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("signature link not found")
		}
		return nil, errs.Upstream("failed to load sign link", err)
	}

	if link.IsExpired(s.now()) {
		return nil, errs.Expired("signature link has expired")
	}

	if link.Contract.Lifecycle() == constant.LifecycleSoftDeleted {
		return nil, errs.NotFound("signature link not found")
	}

	return link, nil
}

// Redeem signs the contract through the link. The contract transition is
// committed before the link row is deleted, so a crash in between leaves a
// signed contract with a spent link that can no longer transition anything.
func (s *Service) Redeem(ctx context.Context, token, clientIP string) (*model.Contract, error) {
	link, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	c := &link.Contract
	if _, err := contract.Transition(c, contract.ActionRedeemLink); err != nil {
		return nil, err
	}

	location := s.lookupLocation(ctx, clientIP)
	signedAt := s.now()

	if err := s.contracts.MarkSignedElectronically(ctx, nil, c.ID, signedAt, clientIP, location, link.Token); err != nil {
		return nil, errs.Upstream("failed to record signature", err)
	}

	if err := s.links.DeleteById(ctx, nil, link.ID); err != nil {
		// The contract is signed; a leftover link row only blocks reuse
		// through the status check.
		s.logger.Warnf("Failed to delete redeemed sign link %s: %v", link.ID, err)
	}

	c.Status = constant.ContractStatusSignedElectronically
	c.SignedAt = &signedAt
	c.SignatureIP = clientIP
	c.SignatureLocation = location
	c.SignatureReference = link.Token

	if err := s.notifier.GenerateDocument(ctx, c.ID, false); err != nil {
		s.logger.Errorf("Failed to enqueue document generation for contract %s: %v", c.ID, err)
	}
	if err := s.notifier.ContractSigned(ctx, c.ID); err != nil {
		s.logger.Warnf("Failed to publish signed event for contract %s: %v", c.ID, err)
	}

	return c, nil
}

// lookupLocation is best effort, a failed lookup records the unknown value
// rather than failing the signature.
func (s *Service) lookupLocation(ctx context.Context, ip string) string {
	if s.geo == nil || ip == "" || ip == constant.UnknownSignerValue {
		return constant.UnknownSignerValue
	}

	loc, err := s.geo.Lookup(ctx, ip)
	if err != nil {
		s.logger.Warnf("Geolocation lookup failed for %s: %v", ip, err)
		return constant.UnknownSignerValue
	}

	if loc == nil || loc.String() == "" {
		return constant.UnknownSignerValue
	}
	return loc.String()
}
