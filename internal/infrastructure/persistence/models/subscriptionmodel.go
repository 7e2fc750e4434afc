package models

import "time"

type SubscriptionModel struct {
	TelegramID        string `gorm:"primaryKey;size:64"`
	TelegramUsername  string `gorm:"size:128"`
	PhoneNumber       string `gorm:"size:32"`
	DateOfBirth       *time.Time
	HomeAddress       string `gorm:"size:256"`
	CityOfResidency   string `gorm:"size:128"`
	EmailAddress      string `gorm:"size:256"`
	Occupation        string `gorm:"size:128"`
	Industry          string `gorm:"size:128"`
	Indicative        string `gorm:"size:64"`
	JoiningReasons    string
	PersonalInterests string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
