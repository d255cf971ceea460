// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/MKhiriev/go-file-courier/internal/adapter"
	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/resolver"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/internal/validators"
	"github.com/MKhiriev/go-file-courier/models"
	"golang.org/x/sync/errgroup"
)

// federationService is the concrete implementation of FederationService.
type federationService struct {
	*Lifecycle

	users     store.UserRepository
	peers     adapter.PeerAdapter
	validator validators.Validator

	// fetchLocks serializes fetches of the same transfer.
	fetchLocks *keyedMutex

	domain           string
	fetchConcurrency int

	logger *logger.Logger
}

func NewFederationService(
	lifecycle *Lifecycle,
	users store.UserRepository,
	peers adapter.PeerAdapter,
	validator validators.Validator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) FederationService {
	concurrency := cfg.Federation.FetchConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &federationService{
		Lifecycle:        lifecycle,
		users:            users,
		peers:            peers,
		validator:        validator,
		fetchLocks:       newKeyedMutex(),
		domain:           cfg.App.Domain,
		fetchConcurrency: concurrency,
		logger:           logger,
	}
}

func (s *federationService) AnnounceTransfer(ctx context.Context, t models.Transfer) (models.Transfer, error) {
	log := logger.FromContext(ctx)

	receiver, err := models.ParseAddress(t.Receiver)
	if err != nil {
		return t, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err = s.peers.Announce(ctx, receiver.Domain, models.Announcement{
		ID:               t.ID,
		WrappedKey:       t.WrappedKey,
		Filename:         t.Filename,
		Subject:          t.Subject,
		Size:             strconv.FormatInt(t.Size, 10),
		SenderAddress:    t.Sender,
		RecipientAddress: t.Receiver,
		ChunkSize:        t.ChunkSize,
	})
	if err != nil {
		log.Err(err).Str("func", "*federationService.AnnounceTransfer").
			Str("transfer_id", t.ID).
			Str("domain", receiver.Domain).
			Msg("announcement failed")
		s.record(ctx, models.EventTransferSentFailed, t.ID, t.Sender)
		if errors.Is(err, adapter.ErrNotFound) {
			return t, fmt.Errorf("%w: %w", ErrRecipientNotFound, err)
		}
		return t, peerError(err)
	}

	sent, _, err := s.advance(ctx, t.ID, transitionSent, t.Sender, nil)
	return sent, err
}

// FetchRemoteTransfer runs with the transfer's fetch lock held by the caller.
func (s *federationService) FetchRemoteTransfer(ctx context.Context, t models.Transfer) (int, error) {
	log := logger.FromContext(ctx).WithTransfer(t.ID).With().
		Str("func", "*federationService.FetchRemoteTransfer").
		Logger()

	sender, err := models.ParseAddress(t.Sender)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	count, err := s.fetchChunks(ctx, sender.Domain, t)
	if err != nil {
		// leave nothing of a failed fetch behind
		if delErr := s.chunks.DeleteChunks(context.WithoutCancel(ctx), t.ID); delErr != nil {
			log.Err(delErr).Msg("error removing partially fetched chunks")
		}
		return 0, err
	}

	return count, nil
}

func (s *federationService) fetchChunks(ctx context.Context, domain string, t models.Transfer) (int, error) {
	indices, err := s.peers.ListChunks(ctx, domain, t.ID)
	if err != nil {
		return 0, peerError(err)
	}
	if len(indices) == 0 {
		return 0, fmt.Errorf("%w: sender server lists no chunks", ErrInvalidChunk)
	}
	for i, idx := range indices {
		if idx != uint32(i) {
			return 0, fmt.Errorf("%w: sender server lists a gap at %d", ErrInvalidChunk, i)
		}
	}
	lastIndex := indices[len(indices)-1]
	if t.ChunkSize > 0 && int64(lastIndex) != finalChunkIndex(t) {
		return 0, fmt.Errorf("%w: sender server lists %d chunks for %d bytes", ErrInvalidChunk, len(indices), t.Size)
	}

	var (
		total   atomic.Int64
		sawLast atomic.Bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchConcurrency)
	for _, index := range indices {
		g.Go(func() error {
			chunk, err := s.peers.FetchChunk(gctx, domain, t.ID, index)
			if err != nil {
				return peerError(err)
			}

			if err := s.validator.Validate(gctx, chunk); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
			}
			if chunk.IsLast != (index == lastIndex) {
				return fmt.Errorf("%w: final chunk flag on chunk %d", ErrInvalidChunk, index)
			}

			plain := int64(len(chunk.Ciphertext) - crypto.TagSize)
			if t.ChunkSize > 0 && plain > int64(t.ChunkSize) {
				return fmt.Errorf("%w: chunk %d carries %d bytes", ErrInvalidChunk, index, plain)
			}
			if got := total.Add(plain); got > t.Size {
				return fmt.Errorf("%w: %d bytes fetched, %d announced", ErrSizeExceeded, got, t.Size)
			}

			if err := s.chunks.PutChunk(gctx, t.ID, chunk); err != nil {
				return fmt.Errorf("error storing fetched chunk %d: %w", index, err)
			}
			if chunk.IsLast {
				sawLast.Store(true)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	if !sawLast.Load() {
		return 0, fmt.Errorf("%w: no final chunk", ErrInvalidChunk)
	}

	return len(indices), nil
}

func (s *federationService) AcceptRemoteTransfer(ctx context.Context, t models.Transfer) (models.Transfer, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*federationService.AcceptRemoteTransfer").
		Str("transfer_id", t.ID).
		Logger()

	unlock := s.fetchLocks.Lock(t.ID)
	defer unlock()

	current, err := s.getTransfer(ctx, t.ID)
	if err != nil {
		return models.Transfer{}, err
	}
	switch current.Status {
	case models.StatusAccepted, models.StatusRetrieved:
		return current, nil
	case models.StatusUploaded:
	default:
		return current, fmt.Errorf("%w: accept %s transfer", ErrInvalidTransition, current.Status)
	}

	count, err := s.FetchRemoteTransfer(ctx, current)
	if err != nil {
		log.Err(err).Msg("error fetching remote chunks")
		s.record(ctx, models.EventTransferAcceptedFailed, t.ID, t.Receiver)
		return current, err
	}

	accepted, won, err := s.advance(ctx, t.ID, transitionAccepted, t.Receiver, &count)
	if err != nil {
		return accepted, err
	}

	if won {
		for _, status := range []models.TransferStatus{models.StatusAccepted, models.StatusRetrieved} {
			if err := s.NotifyStatus(ctx, accepted, status); err != nil {
				log.Warn().Err(err).Str("status", string(status)).Msg("error notifying sender server")
			}
		}
	}

	return accepted, nil
}

func (s *federationService) NotifyStatus(ctx context.Context, t models.Transfer, status models.TransferStatus) error {
	// a shadow transfer reports to the sender, an outgoing one to the receiver
	peer := t.Receiver
	if t.Origin == models.OriginRemote {
		peer = t.Sender
	}

	addr, err := models.ParseAddress(peer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.peers.NotifyStatus(ctx, addr.Domain, t.ID, status); err != nil {
		return peerError(err)
	}
	return nil
}

// ReceiveAnnouncement creates the local shadow of a transfer offered by the
// sender's server. Nothing is stored unless the sender belongs to the
// authenticated peer domain and the receiver is a local user with keys.
func (s *federationService) ReceiveAnnouncement(ctx context.Context, peerDomain string, a models.Announcement) (models.Transfer, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*federationService.ReceiveAnnouncement").
		Str("transfer_id", a.ID).
		Str("domain", peerDomain).
		Logger()

	if err := s.validator.Validate(ctx, a); err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sender, err := models.ParseAddress(a.SenderAddress)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if !strings.EqualFold(sender.Domain, peerDomain) {
		log.Warn().Str("sender", sender.String()).Msg("announcement for a sender of another domain")
		return models.Transfer{}, ErrDomainMismatch
	}

	receiver, err := models.ParseAddress(a.RecipientAddress)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if receiver.Domain != s.domain {
		return models.Transfer{}, ErrRecipientNotFound
	}

	user, err := s.users.FindUserByLogin(ctx, receiver.Login)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.Transfer{}, ErrRecipientNotFound
	}
	if err != nil {
		return models.Transfer{}, fmt.Errorf("error finding receiver: %w", err)
	}
	if !user.HasKeys() {
		return models.Transfer{}, ErrKeysNotRegistered
	}

	size, err := strconv.ParseInt(a.Size, 10, 64)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	shadow := models.Transfer{
		ID:         a.ID,
		Sender:     sender.String(),
		Receiver:   receiver.String(),
		ReceiverID: &user.UserID,
		Origin:     models.OriginRemote,
		Filename:   a.Filename,
		Subject:    a.Subject,
		Size:       size,
		WrappedKey: a.WrappedKey,
		Status:     models.StatusUploaded,
		ChunkSize:  a.ChunkSize,
	}

	created, err := s.transfers.CreateTransfer(ctx, shadow)
	if errors.Is(err, store.ErrTransferAlreadyExists) {
		existing, getErr := s.getTransfer(ctx, a.ID)
		if getErr != nil {
			return models.Transfer{}, getErr
		}
		if existing.Origin == models.OriginRemote && existing.Sender == shadow.Sender && existing.Receiver == shadow.Receiver {
			return existing, nil
		}
		log.Warn().Msg("announcement reuses the id of another transfer")
		return models.Transfer{}, err
	}
	if err != nil {
		log.Err(err).Msg("error creating shadow transfer")
		return models.Transfer{}, fmt.Errorf("error creating shadow transfer: %w", err)
	}

	s.record(ctx, models.EventTransferCreated, created.ID, created.Sender)

	return created, nil
}

func (s *federationService) ListChunksForPeer(ctx context.Context, peerDomain, transferID string) ([]uint32, error) {
	if _, err := s.outgoingForPeer(ctx, peerDomain, transferID); err != nil {
		return nil, err
	}

	indices, err := s.chunks.ListChunks(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("error listing chunks: %w", err)
	}
	return indices, nil
}

func (s *federationService) GetChunkForPeer(ctx context.Context, peerDomain, transferID string, index uint32) (models.EncryptedChunk, error) {
	if _, err := s.outgoingForPeer(ctx, peerDomain, transferID); err != nil {
		return models.EncryptedChunk{}, err
	}

	chunk, err := s.chunks.GetChunk(ctx, transferID, index)
	if err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("error reading chunk: %w", err)
	}
	return chunk, nil
}

// outgoingForPeer returns a transfer of this server whose receiver lives on
// peerDomain and whose chunks may be fetched.
func (s *federationService) outgoingForPeer(ctx context.Context, peerDomain, transferID string) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.checkReceiverDomain(t, peerDomain); err != nil {
		return models.Transfer{}, err
	}
	if t.Status != models.StatusSent && t.Status != models.StatusAccepted {
		return models.Transfer{}, ErrChunkNotAvailable
	}
	return t, nil
}

// ReceiveStatus applies a status reported by the receiver's server.
func (s *federationService) ReceiveStatus(ctx context.Context, peerDomain, transferID string, status models.TransferStatus) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.checkReceiverDomain(t, peerDomain); err != nil {
		return models.Transfer{}, err
	}

	var tr transition
	switch status {
	case models.StatusAccepted:
		tr = transitionAccepted
	case models.StatusRefused:
		tr = transitionRefused
	case models.StatusRetrieved:
		tr = transitionRetrieved
	default:
		return models.Transfer{}, fmt.Errorf("%w: status %q cannot be reported", ErrInvalidDataProvided, status)
	}

	updated, _, err := s.advance(ctx, transferID, tr, t.Receiver, nil)
	return updated, err
}

// checkReceiverDomain hides transfers the peer has no business with.
func (s *federationService) checkReceiverDomain(t models.Transfer, peerDomain string) error {
	if t.Origin != models.OriginLocal {
		return ErrTransferNotFound
	}
	receiver, err := models.ParseAddress(t.Receiver)
	if err != nil || !strings.EqualFold(receiver.Domain, peerDomain) {
		return ErrTransferNotFound
	}
	return nil
}

// peerError marks resolver and peer failures as ErrTransferUnavailable.
func peerError(err error) error {
	if errors.Is(err, resolver.ErrUnconfiguredDomain) || errors.Is(err, resolver.ErrMalformedRecord) {
		return fmt.Errorf("%w: domain does not federate: %w", ErrTransferUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrTransferUnavailable, err)
}
