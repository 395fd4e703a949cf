package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"webstore/internal/core/domain"
	"webstore/pkg/apperror"

	"github.com/spf13/afero"
)

// WalletStore implements ports.WalletRepository with one JSON document per
// user under the accounts directory. Documents are rewritten whole on every
// save; per-user write serialization is the caller's concern.
type WalletStore struct {
	fs  afero.Fs
	dir string
}

// NewWalletStore creates the store and its accounts directory.
func NewWalletStore(fs afero.Fs, dir string) (*WalletStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating accounts dir: %w", err)
	}
	return &WalletStore{fs: fs, dir: dir}, nil
}

func (s *WalletStore) path(userID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("user_%d.json", userID))
}

// Create stores a fresh wallet, failing when the user already has one.
func (s *WalletStore) Create(ctx context.Context, userID int64, w *domain.Wallet) error {
	exists, err := afero.Exists(s.fs, s.path(userID))
	if err != nil {
		return fmt.Errorf("checking wallet file: %w", err)
	}
	if exists {
		return apperror.ErrAlreadyExists("Wallet")
	}
	return s.write(userID, w)
}

// Get loads and decodes the wallet document.
func (s *WalletStore) Get(ctx context.Context, userID int64) (*domain.Wallet, error) {
	data, err := afero.ReadFile(s.fs, s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.ErrNotFound("Wallet")
		}
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	w := &domain.Wallet{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, apperror.ErrCorruptWallet(fmt.Errorf("decoding wallet for user %d: %w", userID, err))
	}
	// Valid JSON can still be missing whole sections ({}, null, a document
	// without "currencies"); an absent map is corruption, not an empty map.
	if w.Cart.Items == nil || w.Cart.Summary == nil || w.Orders == nil || w.Balances == nil {
		return nil, apperror.ErrCorruptWallet(fmt.Errorf("wallet for user %d is missing required sections", userID))
	}
	return w, nil
}

// Save overwrites the wallet document.
func (s *WalletStore) Save(ctx context.Context, userID int64, w *domain.Wallet) error {
	return s.write(userID, w)
}

// write replaces the document atomically: the new content lands in a temp
// file first and is renamed over the old one, so a concurrent read sees
// either the previous document or the new one, never a partial write.
func (s *WalletStore) write(userID int64, w *domain.Wallet) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding wallet: %w", err)
	}

	tmp := s.path(userID) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing wallet file: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path(userID)); err != nil {
		return fmt.Errorf("replacing wallet file: %w", err)
	}
	return nil
}
