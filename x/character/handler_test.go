package character

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ceptorclub/ceptor/core"
	"github.com/ceptorclub/ceptor/core/mock"
	"github.com/ceptorclub/ceptor/internal/testutil"
)

func TestHandlerPostThenList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var stored []core.CharacterData
	mockService := mock_core.NewMockCharacterService(ctrl)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, character core.CharacterData) (core.CharacterData, error) {
			character.ID = "c1"
			stored = append(stored, character)
			return character, nil
		},
	)
	mockService.EXPECT().List(gomock.Any()).DoAndReturn(
		func(_ context.Context) ([]core.CharacterData, error) {
			return stored, nil
		},
	)

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodPost, "/characterData", `{"name":"Thorin","ownerWallet":"0xdef"}`)
	if assert.NoError(t, h.Post(c)) {
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	c, _, rec, _ = testutil.CreateHttpRequest(http.MethodGet, "/characterData", "")
	if assert.NoError(t, h.List(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var response core.ResponseBase[[]core.CharacterData]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		if assert.Len(t, response.Content, 1) {
			assert.Equal(t, "Thorin", response.Content[0].Name)
			assert.Equal(t, "0xdef", response.Content[0].OwnerWallet)
		}
	}
}

func TestHandlerPostInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockCharacterService(ctrl)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(core.CharacterData{}, core.NewErrorBadRequest("name is required"))

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodPost, "/characterData", `{"ownerWallet":"0xdef"}`)
	if assert.NoError(t, h.Post(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response core.ResponseBase[any]
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Bad Request: name is required", response.Message)
	}
}

func TestHandlerGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock_core.NewMockCharacterService(ctrl)
	mockService.EXPECT().GetByID(gomock.Any(), "missing").Return(core.CharacterData{}, core.NewErrorNotFound())

	h := NewHandler(mockService)

	c, _, rec, _ := testutil.CreateHttpRequest(http.MethodGet, "/characterData/missing", "")
	c.SetParamNames("_id")
	c.SetParamValues("missing")
	if assert.NoError(t, h.Get(c)) {
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}
