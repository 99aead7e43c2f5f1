package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Metadata keys carried on the payment intent.
const (
	MetaHouseID        = "houseId"
	MetaUserID         = "userId"
	MetaCheckinDate    = "checkinDate"
	MetaCheckoutDate   = "checkoutDate"
	MetaNumberOfPeople = "numberOfPeople"
	MetaAmount         = "amount"
)

// ErrInvalidMetadata は決済メタデータから予約を復元できないことを表します。
var ErrInvalidMetadata = errors.New("invalid reservation metadata")

// Draft は決済前の予約内容です。決済プロバイダーのメタデータとして往復し、決済完了後に予約になります。
type Draft struct {
	HouseID        uint
	UserID         uint
	CheckinDate    time.Time
	CheckoutDate   time.Time
	NumberOfPeople int
	Amount         int
}

// Metadata は決済プロバイダーに渡す文字列のキー・値に変換します。
func (d Draft) Metadata() map[string]string {
	return map[string]string{
		MetaHouseID:        strconv.FormatUint(uint64(d.HouseID), 10),
		MetaUserID:         strconv.FormatUint(uint64(d.UserID), 10),
		MetaCheckinDate:    FormatDate(d.CheckinDate),
		MetaCheckoutDate:   FormatDate(d.CheckoutDate),
		MetaNumberOfPeople: strconv.Itoa(d.NumberOfPeople),
		MetaAmount:         strconv.Itoa(d.Amount),
	}
}

// DraftFromMetadata は決済メタデータから予約内容を復元します。
// 欠落・形式不正のキーがある場合は ErrInvalidMetadata を返します。
func DraftFromMetadata(md map[string]string) (Draft, error) {
	var (
		d    Draft
		errs []error
	)

	parseID := func(key string) uint {
		v, err := strconv.ParseUint(md[key], 10, 64)
		if err != nil || v == 0 {
			errs = append(errs, fmt.Errorf("%s=%q", key, md[key]))
			return 0
		}
		return uint(v)
	}
	parseInt := func(key string) int {
		v, err := strconv.Atoi(md[key])
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("%s=%q", key, md[key]))
			return 0
		}
		return v
	}
	parseDate := func(key string) time.Time {
		v, err := ParseDate(md[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q", key, md[key]))
		}
		return v
	}

	d.HouseID = parseID(MetaHouseID)
	d.UserID = parseID(MetaUserID)
	d.CheckinDate = parseDate(MetaCheckinDate)
	d.CheckoutDate = parseDate(MetaCheckoutDate)
	d.NumberOfPeople = parseInt(MetaNumberOfPeople)
	d.Amount = parseInt(MetaAmount)

	if len(errs) > 0 {
		return Draft{}, fmt.Errorf("%w: %w", ErrInvalidMetadata, errors.Join(errs...))
	}
	return d, nil
}
