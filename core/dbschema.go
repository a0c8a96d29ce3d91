package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a community member identified by wallet
// mutable
type User struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	Email       *string   `json:"email" gorm:"type:text;default:null"`
	Wallet      string    `json:"wallet" gorm:"type:text;uniqueIndex;not null"`
	MailingList bool      `json:"mailingList" gorm:"type:boolean;not null"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;autoCreateTime"`
}

// CharacterData is a game character created by a user
// immutable
type CharacterData struct {
	ID          string    `json:"_id" gorm:"primaryKey;type:text"`
	Name        string    `json:"name" gorm:"type:text"`
	OwnerWallet string    `json:"ownerWallet" gorm:"type:text;index"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;autoCreateTime"`
}

// Submission is an nft entry that wallets vote on
// LikesAmount always equals len(VoterWallets)
type Submission struct {
	ID               string         `json:"_id" gorm:"primaryKey;type:text"`
	AddressOfCreator string         `json:"addressOfCreator" gorm:"type:text"`
	Image            string         `json:"image" gorm:"type:text"`
	LikesAmount      int64          `json:"likesAmount" gorm:"type:bigint;not null"`
	TokenID          int64          `json:"tokenID" gorm:"type:bigint;uniqueIndex;not null"`
	ChainID          int64          `json:"chainId" gorm:"type:bigint"`
	WeekTimestamp    int64          `json:"weekTimestamp" gorm:"type:bigint;index"`
	VoterWallets     pq.StringArray `json:"voterWallets" gorm:"type:text[];not null;default:'{}'"`
	CDate            time.Time      `json:"cdate" gorm:"->;<-:create;autoCreateTime"`
}

// Campaign is a scheduling record organized by a game master
type Campaign struct {
	ID             string         `json:"_id" gorm:"primaryKey;type:text"`
	GMWallet       string         `json:"gmWallet" gorm:"type:text;index"`
	NameOfCampaign string         `json:"nameOfCampaign" gorm:"type:text"`
	PCWallets      pq.StringArray `json:"pcWallets" gorm:"type:text[];not null;default:'{}'"`
	AvailableTimes TimeSlots      `json:"availableTimes" gorm:"type:json"`
	CDate          time.Time      `json:"cdate" gorm:"->;<-:create;autoCreateTime"`
}

// TimeSlots is stored as a json array of RFC3339 timestamps
type TimeSlots []time.Time

// Value implements driver.Valuer
func (t TimeSlots) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]time.Time(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *TimeSlots) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = TimeSlots{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for TimeSlots: %T", src)
	}
	var slots []time.Time
	if err := json.Unmarshal(raw, &slots); err != nil {
		return err
	}
	*t = slots
	return nil
}

// Migrate creates or updates every table named in collections
func Migrate(db *gorm.DB, collections Collections) error {
	tables := []struct {
		name  string
		model any
	}{
		{collections.Users, &User{}},
		{collections.Characters, &CharacterData{}},
		{collections.Submissions, &Submission{}},
		{collections.Campaigns, &Campaign{}},
	}
	for _, table := range tables {
		if err := db.Table(table.name).AutoMigrate(table.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table.name, err)
		}
	}
	return nil
}
