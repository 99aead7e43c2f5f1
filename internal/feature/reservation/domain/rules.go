// Package domain は予約の料金計算・定員確認と、決済プロバイダーとの受け渡しに使う値を定義します。
package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout は宿泊日の文字列表現です（決済メタデータ・APIの入出力で共通）。
const DateLayout = "2006-01-02"

var (
	// ErrInvalidStayPeriod はチェックアウト日がチェックイン日より後でないことを表します。
	ErrInvalidStayPeriod = errors.New("checkout date must be after checkin date")

	// ErrOverCapacity は宿泊人数が定員を超えていることを表します。
	ErrOverCapacity = errors.New("number of people exceeds capacity")
)

// IsWithinCapacity は宿泊人数が定員以内かどうかを返します。
func IsWithinCapacity(numberOfPeople, capacity int) bool {
	return numberOfPeople <= capacity
}

// Nights はチェックインからチェックアウトまでの泊数（暦日の差）を返します。
// 時刻部分は無視し、各日付の年月日だけで計算します。
func Nights(checkin, checkout time.Time) int {
	ci := dateOnly(checkin)
	co := dateOnly(checkout)
	return int(co.Sub(ci).Hours() / 24)
}

// CalculateAmount は1泊料金×泊数を返します。同日の場合は0です。
// 日付の前後関係は検証しないため、呼び出し側で ValidateStayPeriod を通してください。
func CalculateAmount(checkin, checkout time.Time, nightlyPrice int) int {
	return nightlyPrice * Nights(checkin, checkout)
}

// ValidateStayPeriod は1泊以上の滞在であることを確認します。
func ValidateStayPeriod(checkin, checkout time.Time) error {
	if Nights(checkin, checkout) <= 0 {
		return ErrInvalidStayPeriod
	}
	return nil
}

// ParseDate は YYYY-MM-DD 形式の日付をUTCの0時として解釈します。
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate は日付を YYYY-MM-DD 形式にします。
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
