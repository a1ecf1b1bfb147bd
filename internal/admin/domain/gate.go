package domain

import "time"

// GateState は管理ゲートの状態。
type GateState string

const (
	// GateLocked は管理ボタン自体が隠れている初期状態。
	GateLocked GateState = "locked"
	// GateVisibleLocked は管理ボタンが見えているが編集モードは無効の状態。
	GateVisibleLocked GateState = "visible_locked"
	// GateVisibleUnlocked は編集モードが有効な状態。
	GateVisibleUnlocked GateState = "visible_unlocked"
)

const (
	// GestureThreshold はロゴ連打で管理ボタンを出すために必要な回数。
	GestureThreshold = 5
	// GestureWindow はカウンタを維持できる無操作時間。クリックのたびに延長される。
	GestureWindow = 3 * time.Second
	// ErrorFlashDuration はパスワード誤りの表示が自動で消えるまでの時間。
	ErrorFlashDuration = 2 * time.Second
)

// Gate は隠しジェスチャーとパスワードで編集モードを制御する状態機械。
// 時刻は呼び出し側から渡すため、タイマーを持たず決定的にテストできる。
// 永続化するのは「管理ボタンが見えている」事実だけで、カウンタや
// エラー表示などの一時状態はプロセス内に閉じる。
type Gate struct {
	secret          string
	state           GateState
	gestureCount    int
	gestureDeadline time.Time
	promptOpen      bool
	errorUntil      time.Time
}

// NewGate はゲートを生成する。unlocked には起動時に読み出した解放フラグを渡す。
func NewGate(secret string, unlocked bool) *Gate {
	state := GateLocked
	if unlocked {
		state = GateVisibleLocked
	}
	return &Gate{secret: secret, state: state}
}

// State は現在の状態を返す。
func (g *Gate) State() GateState {
	return g.state
}

// EditModeActive は編集モードが有効かどうかを返す。
func (g *Gate) EditModeActive() bool {
	return g.state == GateVisibleUnlocked
}

// PromptOpen は確認ダイアログが開いているかどうかを返す。
func (g *Gate) PromptOpen() bool {
	return g.promptOpen
}

// ErrorActive はパスワード誤りの表示が点灯中かどうかを返す。
func (g *Gate) ErrorActive(now time.Time) bool {
	return now.Before(g.errorUntil)
}

// Gesture はロゴクリック 1 回分を処理する。
// 前回クリックから GestureWindow を超えていればカウンタを 0 に戻してから数え、
// クリックのたびに期限を張り直す(連打が続く限りカウンタは生き続ける)。
// しきい値到達で Locked -> VisibleLocked に遷移し、カウンタを 0 へ戻す。
// 戻り値はこの呼び出しで新たに管理ボタンが解放されたかどうかで、
// true のとき呼び出し側は解放フラグを永続化する。
func (g *Gate) Gesture(now time.Time) bool {
	if now.After(g.gestureDeadline) {
		g.gestureCount = 0
	}
	g.gestureCount++
	g.gestureDeadline = now.Add(GestureWindow)

	if g.gestureCount < GestureThreshold {
		return false
	}
	g.gestureCount = 0
	if g.state != GateLocked {
		return false
	}
	g.state = GateVisibleLocked
	return true
}

// RequestToggle は編集モード切り替えの確認ダイアログを開く。
// 管理ボタンが隠れている間は何もしない。
func (g *Gate) RequestToggle() {
	if g.state == GateLocked {
		return
	}
	g.promptOpen = true
}

// Confirm は確認ダイアログの決定操作を処理する。
// 編集モード中なら、パスワードなしで即座に VisibleLocked へ戻して閉じる。
// 編集モード外なら、パスワードが一致したときのみ VisibleUnlocked へ遷移して
// エラー表示を消し、ダイアログを閉じる。不一致時は遷移せず、
// ErrorFlashDuration の間だけエラー表示を点灯する(ダイアログは開いたまま)。
// 戻り値は操作が受理されたかどうか。
func (g *Gate) Confirm(password string, now time.Time) bool {
	if !g.promptOpen {
		return false
	}

	if g.state == GateVisibleUnlocked {
		g.state = GateVisibleLocked
		g.promptOpen = false
		return true
	}

	if g.state == GateVisibleLocked && password == g.secret {
		g.state = GateVisibleUnlocked
		g.promptOpen = false
		g.errorUntil = time.Time{}
		return true
	}

	g.errorUntil = now.Add(ErrorFlashDuration)
	return false
}

// Cancel は確認ダイアログを閉じる。状態遷移はしない。
func (g *Gate) Cancel() {
	g.promptOpen = false
}
