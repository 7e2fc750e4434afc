package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	subscriptionUsecases "github.com/jubbslineu/tokensale/internal/application/subscription/usecases"
	"github.com/jubbslineu/tokensale/internal/domain/subscription"
	"github.com/jubbslineu/tokensale/internal/shared/logger"
	"github.com/jubbslineu/tokensale/internal/shared/utils"
)

type SubscriptionHandler struct {
	getSubscriptionUC    *subscriptionUsecases.GetSubscriptionUseCase
	submitSubscriptionUC *subscriptionUsecases.SubmitSubscriptionUseCase
	updateSubscriptionUC *subscriptionUsecases.UpdateSubscriptionUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	getSubscriptionUC *subscriptionUsecases.GetSubscriptionUseCase,
	submitSubscriptionUC *subscriptionUsecases.SubmitSubscriptionUseCase,
	updateSubscriptionUC *subscriptionUsecases.UpdateSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		getSubscriptionUC:    getSubscriptionUC,
		submitSubscriptionUC: submitSubscriptionUC,
		updateSubscriptionUC: updateSubscriptionUC,
		logger:               logger,
	}
}

type SubscriptionRequest struct {
	TelegramID        string `json:"telegramId" binding:"required"`
	TelegramUsername  string `json:"telegramUsername"`
	PhoneNumber       string `json:"phoneNumber"`
	DateOfBirth       string `json:"dateOfBirth"`
	HomeAddress       string `json:"homeAddress"`
	CityOfResidency   string `json:"cityOfResidency"`
	EmailAddress      string `json:"emailAddress" binding:"omitempty,email"`
	Occupation        string `json:"occupation"`
	Industry          string `json:"industry"`
	Indicative        string `json:"indicative"`
	JoiningReasons    string `json:"joiningReasons"`
	PersonalInterests string `json:"personalInterests"`
}

func (r *SubscriptionRequest) profile() (subscription.Profile, error) {
	profile := subscription.Profile{
		TelegramUsername:  r.TelegramUsername,
		PhoneNumber:       r.PhoneNumber,
		HomeAddress:       r.HomeAddress,
		CityOfResidency:   r.CityOfResidency,
		EmailAddress:      r.EmailAddress,
		Occupation:        r.Occupation,
		Industry:          r.Industry,
		Indicative:        r.Indicative,
		JoiningReasons:    r.JoiningReasons,
		PersonalInterests: r.PersonalInterests,
	}

	if r.DateOfBirth != "" {
		dob, err := parseDate(r.DateOfBirth)
		if err != nil {
			return subscription.Profile{}, err
		}
		profile.DateOfBirth = &dob
	}
	return profile, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

type SubscriptionView struct {
	TelegramID        string `json:"telegramId"`
	TelegramUsername  string `json:"telegramUsername,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	HomeAddress       string `json:"homeAddress,omitempty"`
	CityOfResidency   string `json:"cityOfResidency,omitempty"`
	EmailAddress      string `json:"emailAddress,omitempty"`
	Occupation        string `json:"occupation,omitempty"`
	Industry          string `json:"industry,omitempty"`
	Indicative        string `json:"indicative,omitempty"`
	JoiningReasons    string `json:"joiningReasons,omitempty"`
	PersonalInterests string `json:"personalInterests,omitempty"`
}

func newSubscriptionView(sub *subscription.Subscription) SubscriptionView {
	profile := sub.Profile()
	view := SubscriptionView{
		TelegramID:        sub.TelegramID(),
		TelegramUsername:  profile.TelegramUsername,
		PhoneNumber:       profile.PhoneNumber,
		HomeAddress:       profile.HomeAddress,
		CityOfResidency:   profile.CityOfResidency,
		EmailAddress:      profile.EmailAddress,
		Occupation:        profile.Occupation,
		Industry:          profile.Industry,
		Indicative:        profile.Indicative,
		JoiningReasons:    profile.JoiningReasons,
		PersonalInterests: profile.PersonalInterests,
	}
	if profile.DateOfBirth != nil {
		view.DateOfBirth = profile.DateOfBirth.Format(time.RFC3339)
	}
	return view
}

// @Summary		Get subscription
// @Description	Looks up a member profile by Telegram identity
// @Tags			subscription
// @Produce		json
// @Param			telegramId	path		string										true	"Telegram ID"
// @Success		200			{object}	utils.APIResponse{data=SubscriptionView}	"Subscription Retrieved"
// @Failure		404			{object}	utils.APIResponse							"Subscription Not Found"
// @Router			/subscription/{telegramId} [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
	cmd := subscriptionUsecases.GetSubscriptionCommand{
		TelegramID: c.Param("telegramId"),
	}

	result, err := h.getSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription Retrieved", newSubscriptionView(result.Subscription))
}

type SubmitSubscriptionResponse struct {
	Token   string `json:"token"`
	Created bool   `json:"created"`
}

// @Summary		Submit subscription
// @Description	Records a member profile and returns a signed token for the identity. Creates the user implicitly when unknown.
// @Tags			subscription
// @Accept			json
// @Produce		json
// @Param			subscription	body		SubscriptionRequest									true	"Member profile"
// @Success		202				{object}	utils.APIResponse{data=SubmitSubscriptionResponse}	"Subscription JWT Created"
// @Failure		400				{object}	utils.APIResponse									"Bad request"
// @Router			/subscription/submit [post]
func (h *SubscriptionHandler) Submit(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	profile, err := req.profile()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid date of birth: "+err.Error())
		return
	}

	cmd := subscriptionUsecases.SubmitSubscriptionCommand{
		TelegramID: req.TelegramID,
		Profile:    profile,
	}

	result, err := h.submitSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to submit subscription", "error", err, "telegram_id", req.TelegramID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Subscription JWT Created", SubmitSubscriptionResponse{
		Token:   result.Token,
		Created: result.Created,
	})
}

// @Summary		Update subscription
// @Description	Replaces an existing member profile
// @Tags			subscription
// @Accept			json
// @Produce		json
// @Param			subscription	body		SubscriptionRequest							true	"Member profile"
// @Success		202				{object}	utils.APIResponse{data=SubscriptionView}	"Subscription Updated"
// @Failure		400				{object}	utils.APIResponse							"Subscription not found"
// @Router			/subscription/update [post]
func (h *SubscriptionHandler) Update(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	profile, err := req.profile()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid date of birth: "+err.Error())
		return
	}

	cmd := subscriptionUsecases.UpdateSubscriptionCommand{
		TelegramID: req.TelegramID,
		Profile:    profile,
	}

	result, err := h.updateSubscriptionUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "Subscription Updated", newSubscriptionView(result.Subscription))
}
