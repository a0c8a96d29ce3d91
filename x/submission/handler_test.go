package submission

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/core/mock"
	"github.com/ceptorclub/ceptor/internal/testutil"
)

func TestHandlerVote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockSubmissionService(ctrl)
	mockService.EXPECT().Vote(gomock.Any(), int64(3), "0xabc").Return(core.VoteResult{TokenID: 3, ModifiedCount: 1}, nil)
	mockService.EXPECT().Vote(gomock.Any(), int64(3), "0xabc").Return(core.VoteResult{}, core.NewErrorAlreadyExists())

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodPost, "/voteForSubmission", `{"tokenID":3,"wallet":"0xabc"}`)
	if assert.NoError(t, h.Vote(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response core.ResponseBase[core.VoteResult]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, int64(1), response.Content.ModifiedCount)
	}

	c, _, rec, _ = testutil.CreateHttpRequest(http.MethodPut, "/update-nft-votes", `{"tokenID":3,"wallet":"0xabc"}`)
	if assert.NoError(t, h.Vote(c)) {
		assert.Equal(t, http.StatusConflict, rec.Code)

		var response core.ResponseBase[any]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "already voted", response.Message)
	}
}

func TestHandlerVoteMissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockSubmissionService(ctrl)
	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodPut, "/update-nft-votes", `{"wallet":"0xabc"}`)
	if assert.NoError(t, h.Vote(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestHandlerHighestVoted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockSubmissionService(ctrl)
	mockService.EXPECT().HighestVoted(gomock.Any(), int64(1700438400)).Return(core.Submission{TokenID: 2, LikesAmount: 2}, nil)
	mockService.EXPECT().HighestVoted(gomock.Any(), int64(1)).Return(core.Submission{}, core.NewErrorNotFound())

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodGet, "/highest-voted-nft/1700438400", "")
	c.SetParamNames("weekTimestamp")
	c.SetParamValues("1700438400")
	if assert.NoError(t, h.HighestVoted(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response core.ResponseBase[core.Submission]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, int64(2), response.Content.TokenID)
	}

	c, _, rec, _ = testutil.CreateHttpRequest(http.MethodGet, "/highest-voted-nft/1", "")
	c.SetParamNames("weekTimestamp")
	c.SetParamValues("1")
	if assert.NoError(t, h.HighestVoted(c)) {
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	c, _, rec, _ = testutil.CreateHttpRequest(http.MethodGet, "/highest-voted-nft/lastweek", "")
	c.SetParamNames("weekTimestamp")
	c.SetParamValues("lastweek")
	if assert.NoError(t, h.HighestVoted(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestHandlerPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockSubmissionService(ctrl)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(core.Submission{ID: "s1", TokenID: 9, Image: "ipfs://x"}, nil)

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodPost, "/submission", `{"image":"ipfs://x","tokenID":9,"weekTimestamp":1700438400}`)
	if assert.NoError(t, h.Post(c)) {
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}
