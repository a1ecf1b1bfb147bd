package tips

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Coordinate は地域情報の根拠付けに使う緯度経度。
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FallbackCoordinate は位置情報が取れないときに使う既定座標(館山駅周辺)。
var FallbackCoordinate = Coordinate{Lat: 34.996176, Lng: 139.858713}

// Link は生成結果に添えられる出典リンク。
type Link struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Tip は本日のドライブ豆知識 1 件分。
type Tip struct {
	Text  string `json:"text"`
	Links []Link `json:"links"`
}

// prompt は生成ゲートウェイへ渡す固定の日本語プロンプト。
const prompt = "千葉県館山・南房総エリアのドライバーに向けて、現在の天気や周辺の交通状況、またはドライブに役立つ地域情報を1つ、50文字程度で簡潔に教えてください。挨拶は不要です。"

// フォールバック文言。生成失敗時と空応答時で使い分ける。
const (
	fallbackTipOnFailure = "タイヤの空気圧チェックは燃費向上に効果的です。定期的な点検を！"
	fallbackTipOnEmpty   = "安全運転で、今日も一日お気をつけて！"
)

// Client は生成 AI ゲートウェイの HTTP クライアント。
// ゲートウェイの失敗は呼び出し側へ伝播させず、常に固定文言へ退避する。
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
}

// NewClient constructs a gateway client with a per-request timeout.
func NewClient(endpoint string, timeout time.Duration, logger *log.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		timeout:    timeout,
		logger:     logger,
	}
}

type generateRequest struct {
	Prompt    string  `json:"prompt"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type generateResponse struct {
	Text  string `json:"text"`
	Links []Link `json:"links"`
}

// Generate は座標を根拠付けに添えてヒントを 1 件生成する。
// タイムアウト・通信断・非 200 応答はすべて固定文言で回復し、エラーを返さない。
func (c *Client) Generate(ctx context.Context, coord Coordinate) Tip {
	tip, err := c.generate(ctx, coord)
	if err != nil {
		c.logger.Printf("ヒント生成に失敗したため固定文言を使用します: %v", err)
		return Tip{Text: fallbackTipOnFailure, Links: []Link{}}
	}
	return tip
}

func (c *Client) generate(ctx context.Context, coord Coordinate) (Tip, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Prompt:    prompt,
		Latitude:  coord.Lat,
		Longitude: coord.Lng,
	})
	if err != nil {
		return Tip{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/ai/generate", bytes.NewReader(body))
	if err != nil {
		return Tip{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Tip{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Tip{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Tip{}, err
	}

	links := parsed.Links
	if links == nil {
		links = []Link{}
	}
	if parsed.Text == "" {
		return Tip{Text: fallbackTipOnEmpty, Links: links}, nil
	}
	return Tip{Text: parsed.Text, Links: links}, nil
}
