// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/config"
	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/MKhiriev/go-file-courier/internal/logger"
	"github.com/MKhiriev/go-file-courier/internal/store"
	"github.com/MKhiriev/go-file-courier/internal/utils"
	"github.com/MKhiriev/go-file-courier/internal/validators"
	"github.com/MKhiriev/go-file-courier/models"
)

// transferService is the concrete implementation of TransferService.
type transferService struct {
	*Lifecycle

	users      store.UserRepository
	federation FederationService
	validator  validators.Validator
	ids        *utils.UUIDGenerator

	// domain is this server's federation domain.
	domain string
	// chunkSize is used when a sender does not choose one.
	chunkSize int

	logger *logger.Logger
}

func NewTransferService(
	lifecycle *Lifecycle,
	users store.UserRepository,
	federation FederationService,
	validator validators.Validator,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) TransferService {
	return &transferService{
		Lifecycle:  lifecycle,
		users:      users,
		federation: federation,
		validator:  validator,
		ids:        utils.NewUUIDGenerator(),
		domain:     cfg.App.Domain,
		chunkSize:  cfg.Crypto.ChunkSize,
		logger:     logger,
	}
}

// CreateTransfer stores the metadata and wrapped key of a new transfer in
// CREATED. A local receiver must exist and have keys; a remote receiver is
// checked when the transfer is announced.
func (s *transferService) CreateTransfer(ctx context.Context, userID int64, req models.CreateTransferRequest) (models.Transfer, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	sender, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("error finding sender: %w", err)
	}

	receiver, err := models.ParseAddress(req.Receiver)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	transfer := models.Transfer{
		ID:         s.ids.Generate(),
		Sender:     s.address(sender).String(),
		SenderID:   &sender.UserID,
		Receiver:   receiver.String(),
		Origin:     models.OriginLocal,
		Filename:   req.Filename,
		Subject:    req.Subject,
		Size:       req.Size,
		WrappedKey: req.WrappedKey,
		Status:     models.StatusCreated,
		ChunkSize:  req.ChunkSize,
	}
	if transfer.ChunkSize == 0 {
		transfer.ChunkSize = s.chunkSize
	}

	if receiver.Domain == s.domain {
		receiverUser, err := s.users.FindUserByLogin(ctx, receiver.Login)
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Transfer{}, ErrRecipientNotFound
		}
		if err != nil {
			return models.Transfer{}, fmt.Errorf("error finding receiver: %w", err)
		}
		if !receiverUser.HasKeys() {
			return models.Transfer{}, ErrKeysNotRegistered
		}
		transfer.ReceiverID = &receiverUser.UserID
	}

	created, err := s.transfers.CreateTransfer(ctx, transfer)
	if err != nil {
		log.Err(err).Str("func", "*transferService.CreateTransfer").Str("transfer_id", transfer.ID).Msg("error creating transfer")
		return models.Transfer{}, fmt.Errorf("error creating transfer: %w", err)
	}

	s.record(ctx, models.EventTransferCreated, created.ID, created.Sender)

	return created, nil
}

// UploadChunk stores one chunk of a CREATED transfer. When the stored set
// becomes complete and contiguous the transfer moves to UPLOADED and, for a
// remote receiver, is announced.
//
// A chunk with index i and n plaintext bytes occupies [i*chunkSize,
// i*chunkSize+n) of the file. Ranges of distinct indices never overlap, so
// keeping every range end within the declared size bounds the running total.
func (s *transferService) UploadChunk(ctx context.Context, userID int64, transferID string, chunk models.EncryptedChunk) (models.Transfer, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*transferService.UploadChunk").
		Str("transfer_id", transferID).
		Uint32("chunk_index", chunk.Index).
		Logger()

	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleSender); err != nil {
		return models.Transfer{}, err
	}
	if t.Status != models.StatusCreated {
		return t, fmt.Errorf("%w: upload to %s transfer", ErrInvalidTransition, t.Status)
	}

	if err := s.checkChunk(ctx, t, chunk); err != nil {
		return t, err
	}

	if err := s.chunks.PutChunk(ctx, transferID, chunk); err != nil {
		if errors.Is(err, store.ErrChunkConflict) {
			return t, fmt.Errorf("%w: chunk %d is already stored with different content", ErrInvalidChunk, chunk.Index)
		}
		log.Err(err).Msg("error storing chunk")
		return t, fmt.Errorf("error storing chunk: %w", err)
	}

	count, complete, err := s.uploadComplete(ctx, t)
	if err != nil {
		return t, err
	}
	if !complete {
		return t, nil
	}

	uploaded, won, err := s.advance(ctx, transferID, transitionUploaded, t.Sender, &count)
	if err != nil {
		return t, err
	}
	if !won || s.isLocal(uploaded.Receiver) {
		return uploaded, nil
	}

	announced, err := s.federation.AnnounceTransfer(ctx, uploaded)
	if err != nil {
		// stays UPLOADED; the retry sweep announces it again
		log.Warn().Err(err).Msg("announcement failed")
		return uploaded, nil
	}

	return announced, nil
}

func (s *transferService) checkChunk(ctx context.Context, t models.Transfer, chunk models.EncryptedChunk) error {
	if err := s.validator.Validate(ctx, chunk); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	final := finalChunkIndex(t)
	if int64(chunk.Index) > final {
		return fmt.Errorf("%w: chunk %d is past the final chunk %d", ErrSizeExceeded, chunk.Index, final)
	}
	if chunk.IsLast != (int64(chunk.Index) == final) {
		return fmt.Errorf("%w: final chunk flag on chunk %d, the final chunk is %d", ErrInvalidChunk, chunk.Index, final)
	}

	plain := len(chunk.Ciphertext) - crypto.TagSize
	if plain > t.ChunkSize {
		return fmt.Errorf("%w: chunk %d carries %d bytes, chunk size is %d", ErrInvalidChunk, chunk.Index, plain, t.ChunkSize)
	}
	// only the final chunk may be empty
	if plain == 0 && !chunk.IsLast {
		return fmt.Errorf("%w: chunk %d is empty", ErrInvalidChunk, chunk.Index)
	}

	end := int64(chunk.Index)*int64(t.ChunkSize) + int64(plain)
	if end > t.Size {
		return fmt.Errorf("%w: chunk %d ends at byte %d of %d", ErrSizeExceeded, chunk.Index, end, t.Size)
	}
	if chunk.IsLast && end != t.Size {
		return fmt.Errorf("%w: final chunk %d ends at byte %d of %d", ErrInvalidChunk, chunk.Index, end, t.Size)
	}

	return nil
}

// finalChunkIndex is the index the encryptor gives the final chunk: every
// full chunk is followed by one more, empty when size is a multiple of the
// chunk size.
func finalChunkIndex(t models.Transfer) int64 {
	if t.ChunkSize <= 0 {
		return 0
	}
	return t.Size / int64(t.ChunkSize)
}

// uploadComplete reports whether every index up to the final chunk is
// stored. checkChunk admits no index beyond it, so the count suffices.
func (s *transferService) uploadComplete(ctx context.Context, t models.Transfer) (int, bool, error) {
	indices, err := s.chunks.ListChunks(ctx, t.ID)
	if err != nil {
		return 0, false, fmt.Errorf("error listing chunks: %w", err)
	}

	count := finalChunkIndex(t) + 1
	if int64(len(indices)) != count || int64(indices[len(indices)-1]) != count-1 {
		return 0, false, nil
	}

	return int(count), true, nil
}

func (s *transferService) ListChunkIndices(ctx context.Context, userID int64, transferID string) ([]uint32, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(t, userID, roleAny); err != nil {
		return nil, err
	}

	// the sender may list while uploading to resume
	if !(isSender(t, userID) && t.Status == models.StatusCreated) && !chunksReadable(t.Status) {
		return nil, ErrChunkNotAvailable
	}

	indices, err := s.chunks.ListChunks(ctx, transferID)
	if err != nil {
		return nil, fmt.Errorf("error listing chunks: %w", err)
	}
	return indices, nil
}

func (s *transferService) GetChunk(ctx context.Context, userID int64, transferID string, index uint32) (models.EncryptedChunk, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.EncryptedChunk{}, err
	}
	if err := s.authorize(t, userID, roleReceiver); err != nil {
		return models.EncryptedChunk{}, err
	}
	if !chunksReadable(t.Status) {
		return models.EncryptedChunk{}, ErrChunkNotAvailable
	}

	chunk, err := s.chunks.GetChunk(ctx, transferID, index)
	if err != nil {
		return models.EncryptedChunk{}, fmt.Errorf("error reading chunk: %w", err)
	}
	return chunk, nil
}

func (s *transferService) GetTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleAny); err != nil {
		return models.Transfer{}, err
	}
	return t, nil
}

func (s *transferService) ListInbox(ctx context.Context, userID int64) ([]models.Transfer, error) {
	return s.list(ctx, userID, models.Inbox)
}

func (s *transferService) ListOutbox(ctx context.Context, userID int64) ([]models.Transfer, error) {
	return s.list(ctx, userID, models.Outbox)
}

func (s *transferService) list(ctx context.Context, userID int64, box models.Mailbox) ([]models.Transfer, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	transfers, err := s.transfers.ListForAddress(ctx, s.address(user).String(), box)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", box, err)
	}
	return transfers, nil
}

// AcceptTransfer moves the transfer to ACCEPTED. A transfer that came from
// another domain is fetched from the sender's server first.
func (s *transferService) AcceptTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleReceiver); err != nil {
		return models.Transfer{}, err
	}

	if t.Origin == models.OriginRemote {
		return s.federation.AcceptRemoteTransfer(ctx, t)
	}

	accepted, _, err := s.advance(ctx, transferID, transitionAccepted, t.Receiver, nil)
	return accepted, err
}

func (s *transferService) RefuseTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleReceiver); err != nil {
		return models.Transfer{}, err
	}

	refused, won, err := s.advance(ctx, transferID, transitionRefused, t.Receiver, nil)
	if err != nil {
		return refused, err
	}

	if won && refused.Origin == models.OriginRemote {
		if err := s.federation.NotifyStatus(ctx, refused, models.StatusRefused); err != nil {
			logger.FromContext(ctx).WithTransfer(transferID).Warn().Err(err).
				Str("func", "*transferService.RefuseTransfer").
				Msg("error notifying sender server")
		}
	}

	return refused, nil
}

func (s *transferService) ConfirmRetrieved(ctx context.Context, userID int64, transferID string, success bool) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleReceiver); err != nil {
		return models.Transfer{}, err
	}

	if !success {
		if t.Status != models.StatusAccepted {
			return t, fmt.Errorf("%w: retrieval report for %s transfer", ErrInvalidTransition, t.Status)
		}
		s.record(ctx, models.EventTransferRetrievedFailed, transferID, t.Receiver)
		return t, nil
	}

	retrieved, _, err := s.advance(ctx, transferID, transitionRetrieved, t.Receiver, nil)
	return retrieved, err
}

// DeleteTransfer lets the sender withdraw a transfer that is not yet
// terminal. The record stays as a tombstone; chunks are removed.
func (s *transferService) DeleteTransfer(ctx context.Context, userID int64, transferID string) (models.Transfer, error) {
	t, err := s.getTransfer(ctx, transferID)
	if err != nil {
		return models.Transfer{}, err
	}
	if err := s.authorize(t, userID, roleSender); err != nil {
		return models.Transfer{}, err
	}

	deleted, _, err := s.advance(ctx, transferID, transitionDeleted, t.Sender, nil)
	return deleted, err
}

func (s *transferService) ExpireUserTransfers(ctx context.Context, address string) (int, error) {
	log := logger.FromContext(ctx)

	transfers, err := s.transfers.ListOutstandingForAddress(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("error listing outstanding transfers: %w", err)
	}

	var (
		expired int
		errs    []error
	)
	for _, t := range transfers {
		_, won, err := s.advance(ctx, t.ID, transitionExpiredOutstanding, address, nil)
		if err != nil {
			// a concurrent terminal change is fine; the transfer is no longer outstanding
			if errors.Is(err, ErrInvalidTransition) {
				continue
			}
			log.Err(err).Str("func", "*transferService.ExpireUserTransfers").Str("transfer_id", t.ID).Msg("error expiring transfer")
			errs = append(errs, err)
			continue
		}
		if won {
			expired++
		}
	}

	return expired, errors.Join(errs...)
}

type role int

const (
	roleAny role = iota
	roleSender
	roleReceiver
)

// authorize hides transfers the user takes no part in and rejects the wrong
// role with ErrForbidden.
func (s *transferService) authorize(t models.Transfer, userID int64, r role) error {
	sender, receiver := isSender(t, userID), isReceiver(t, userID)
	if !sender && !receiver {
		return ErrTransferNotFound
	}

	switch r {
	case roleSender:
		if !sender {
			return ErrForbidden
		}
	case roleReceiver:
		if !receiver {
			return ErrForbidden
		}
	}
	return nil
}

func (s *transferService) address(user models.User) models.Address {
	return models.Address{Login: user.Login, Domain: s.domain}
}

func (s *transferService) isLocal(address string) bool {
	a, err := models.ParseAddress(address)
	return err == nil && a.Domain == s.domain
}

func isSender(t models.Transfer, userID int64) bool {
	return t.SenderID != nil && *t.SenderID == userID
}

func isReceiver(t models.Transfer, userID int64) bool {
	return t.ReceiverID != nil && *t.ReceiverID == userID
}

func chunksReadable(status models.TransferStatus) bool {
	return status == models.StatusAccepted || status == models.StatusRetrieved
}
