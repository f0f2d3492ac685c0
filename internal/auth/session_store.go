package auth

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionData - данные сессии, хранимые в Redis
type SessionData struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore хранит сессии в Redis под ключом session:<id>; при заданном ключе данные шифруются AES-GCM
type SessionStore struct {
	client        *redis.Client
	encryptionKey []byte
}

func NewSessionStore(client *redis.Client, encryptionKeyHex string) (*SessionStore, error) {
	store := &SessionStore{client: client}
	if encryptionKeyHex == "" {
		return store, nil
	}

	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	store.encryptionKey = key
	return store, nil
}

func (s *SessionStore) Create(ctx context.Context, sessionID string, data *SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	value, err := s.seal(payload)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKeyPrefix+sessionID, value, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	value, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	payload, err := s.open(value)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (s *SessionStore) seal(plaintext []byte) (string, error) {
	if s.encryptionKey == nil {
		return string(plaintext), nil
	}

	gcm, err := s.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	return hex.EncodeToString(gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *SessionStore) open(value string) ([]byte, error) {
	if s.encryptionKey == nil {
		return []byte(value), nil
	}

	ciphertext, err := hex.DecodeString(value)
	if err != nil {
		return nil, err
	}

	gcm, err := s.gcm()
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *SessionStore) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
