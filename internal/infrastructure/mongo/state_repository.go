package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/application"
	catalogdomain "github.com/yoshino-ss/yoshino-site-services/api/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 永続化キー。移行前のフロントエンドが localStorage に使っていたキー名を踏襲する。
const (
	catalogStateKey = "yoshino_stores_data"
	unlockFlagKey   = "yoshino_mgmt_unlocked"
)

// StateRepository は MongoDB 上の固定キー 2 件(カタログ本体と解放フラグ)で
// アプリケーション状態を永続化する。catalogapp.CatalogRepository と
// adminapp.UnlockFlagRepository の両方を実装する。
type StateRepository struct {
	collection *mongo.Collection
}

// NewStateRepository creates a Mongo-backed state repository.
func NewStateRepository(db *mongo.Database, collectionName string) *StateRepository {
	return &StateRepository{collection: db.Collection(collectionName)}
}

// LoadCatalog は永続化済みカタログを返す。
// ドキュメント未作成は ErrStateNotFound、復元・検証不能は ErrMalformedState。
// 取得自体の失敗(接続断など)はそのまま返し、フォールバック対象にしない。
func (r *StateRepository) LoadCatalog(ctx context.Context) (catalogdomain.Catalog, error) {
	var raw bson.Raw
	err := r.collection.FindOne(ctx, bson.M{"_id": catalogStateKey}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalogapp.ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc catalogStateDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", catalogapp.ErrMalformedState, err)
	}
	return mapCatalogDocument(doc)
}

// SaveCatalog はカタログ全体を上書き保存する。編集が成立するたびに呼ばれる。
func (r *StateRepository) SaveCatalog(ctx context.Context, catalog catalogdomain.Catalog) error {
	doc := buildCatalogDocument(catalog, time.Now())
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": catalogStateKey}, doc, opts); err != nil {
		return fmt.Errorf("カタログ状態の保存に失敗: %w", err)
	}
	return nil
}

// LoadUnlockFlag は解放フラグを返す。未作成・復元不能時は既定の false。
func (r *StateRepository) LoadUnlockFlag(ctx context.Context) (bool, error) {
	var doc unlockFlagDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": unlockFlagKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return doc.Unlocked, nil
}

// SaveUnlockFlag は解放フラグを上書き保存する。
func (r *StateRepository) SaveUnlockFlag(ctx context.Context, unlocked bool) error {
	doc := unlockFlagDocument{ID: unlockFlagKey, Unlocked: unlocked, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": unlockFlagKey}, doc, opts); err != nil {
		return fmt.Errorf("解放フラグの保存に失敗: %w", err)
	}
	return nil
}
