package mappers

import (
	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/infrastructure/persistence/models"
)

func SubscriptionToModel(s *subscription.Subscription) *models.SubscriptionModel {
	profile := s.Profile()
	return &models.SubscriptionModel{
		TelegramID:        s.TelegramID(),
		TelegramUsername:  profile.TelegramUsername,
		PhoneNumber:       profile.PhoneNumber,
		DateOfBirth:       profile.DateOfBirth,
		HomeAddress:       profile.HomeAddress,
		CityOfResidency:   profile.CityOfResidency,
		EmailAddress:      profile.EmailAddress,
		Occupation:        profile.Occupation,
		Industry:          profile.Industry,
		Indicative:        profile.Indicative,
		JoiningReasons:    profile.JoiningReasons,
		PersonalInterests: profile.PersonalInterests,
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func SubscriptionToDomain(model *models.SubscriptionModel) *subscription.Subscription {
	return subscription.Reconstruct(subscription.ReconstructParams{
		TelegramID: model.TelegramID,
		Profile: subscription.Profile{
			TelegramUsername:  model.TelegramUsername,
			PhoneNumber:       model.PhoneNumber,
			DateOfBirth:       model.DateOfBirth,
			HomeAddress:       model.HomeAddress,
			CityOfResidency:   model.CityOfResidency,
			EmailAddress:      model.EmailAddress,
			Occupation:        model.Occupation,
			Industry:          model.Industry,
			Indicative:        model.Indicative,
			JoiningReasons:    model.JoiningReasons,
			PersonalInterests: model.PersonalInterests,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
}
