package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yoshino-ss/yoshino-site-services/api/internal/tips"
)

// TipCache は生成済みヒントを TTL 付きで保持する tips.Cache の実装。
// キー形式: tip:{緯度}:{経度}。座標は 0.01 度(およそ 1km)単位へ丸め、
// 近接した利用者が同じキャッシュを共有できるようにする。
type TipCache struct {
	client *Client
	ttl    time.Duration
}

// NewTipCache creates a tip cache with the given TTL.
func NewTipCache(client *Client, ttl time.Duration) *TipCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TipCache{client: client, ttl: ttl}
}

func tipKey(coord tips.Coordinate) string {
	return fmt.Sprintf("tip:%.2f:%.2f", coord.Lat, coord.Lng)
}

// Get はキャッシュ済みヒントを返す。未登録なら nil。
func (c *TipCache) Get(ctx context.Context, coord tips.Coordinate) (*tips.Tip, error) {
	raw, err := c.client.rdb.Get(ctx, tipKey(coord)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tip tips.Tip
	if err := json.Unmarshal([]byte(raw), &tip); err != nil {
		// 壊れたエントリは未登録と同じ扱いにして生成し直させる
		return nil, nil
	}
	return &tip, nil
}

// Set はヒントを TTL 付きで保存する。
func (c *TipCache) Set(ctx context.Context, coord tips.Coordinate, tip tips.Tip) error {
	raw, err := json.Marshal(tip)
	if err != nil {
		return err
	}
	return c.client.rdb.Set(ctx, tipKey(coord), raw, c.ttl).Err()
}
