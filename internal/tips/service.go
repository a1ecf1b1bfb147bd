package tips

import (
	"context"
	"log"
)

// Cache は生成済みヒントの一時保存を抽象する。座標のグリッド単位でキーを切る。
// 実装は internal/infrastructure/redis。
type Cache interface {
	// Get はキャッシュ済みヒントを返す。未登録なら nil。
	Get(ctx context.Context, coord Coordinate) (*Tip, error)
	Set(ctx context.Context, coord Coordinate, tip Tip) error
}

// Service はキャッシュと生成クライアントを束ね、常にヒントを返す。
type Service struct {
	client *Client
	cache  Cache
	logger *log.Logger
}

// NewService constructs the tip service. cache は nil 可(キャッシュ無効)。
func NewService(client *Client, cache Cache, logger *log.Logger) *Service {
	return &Service{client: client, cache: cache, logger: logger}
}

// TipOfTheDay は指定座標のヒントを返す。座標が渡されなければ既定座標を使う。
// キャッシュ障害は生成呼び出しへ退避し、生成障害は固定文言へ退避するため、
// どの経路でも必ずヒントが返る。
func (s *Service) TipOfTheDay(ctx context.Context, lat, lng *float64) Tip {
	coord := FallbackCoordinate
	if lat != nil && lng != nil {
		coord = Coordinate{Lat: *lat, Lng: *lng}
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, coord)
		if err != nil {
			s.logger.Printf("ヒントキャッシュの読み込みに失敗: %v", err)
		} else if cached != nil {
			return *cached
		}
	}

	tip := s.client.Generate(ctx, coord)

	if s.cache != nil {
		if err := s.cache.Set(ctx, coord, tip); err != nil {
			s.logger.Printf("ヒントキャッシュの保存に失敗: %v", err)
		}
	}
	return tip
}
