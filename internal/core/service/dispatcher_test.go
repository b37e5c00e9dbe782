package service

import (
	"errors"
	"pixbot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Dispatch(t *testing.T) {
	tests := []struct {
		name      string
		req       domain.TransformRequest
		setup     func(c *MockConverter)
		sendErr   error
		wantErr   error
		wantImage bool
		wantText  string
	}{
		{
			name:    "no image",
			req:     domain.TransformRequest{Mode: domain.Pixelate},
			setup:   func(_ *MockConverter) {},
			wantErr: domain.ErrNoImage,
		},
		{
			name:    "unknown mode",
			req:     domain.TransformRequest{Mode: "sepia", ImageRef: "ref"},
			setup:   func(_ *MockConverter) {},
			wantErr: domain.ErrUnknownChoice,
		},
		{
			name: "pixelate",
			req:  domain.TransformRequest{Mode: domain.Pixelate, ImageRef: "ref"},
			setup: func(c *MockConverter) {
				c.On("Pixelate", mock.Anything, []byte("raw")).Return([]byte("jpeg"), nil).Once()
			},
			wantImage: true,
		},
		{
			name: "ascii",
			req:  domain.TransformRequest{Mode: domain.ASCII, ImageRef: "ref", Palette: domain.DefaultPalette},
			setup: func(c *MockConverter) {
				c.On("ASCII", mock.Anything, []byte("raw"), domain.DefaultPalette).Return("@@\n", nil).Once()
			},
			wantText: "@@\n",
		},
		{
			name:    "ascii without palette is rejected before fetching",
			req:     domain.TransformRequest{Mode: domain.ASCII, ImageRef: "ref"},
			setup:   func(_ *MockConverter) {},
			wantErr: domain.ErrInvalidPalette,
		},
		{
			name: "converter error is wrapped",
			req:  domain.TransformRequest{Mode: domain.Pixelate, ImageRef: "ref"},
			setup: func(c *MockConverter) {
				c.On("Pixelate", mock.Anything, mock.Anything).Return(nil, domain.ErrDegenerateSize).Once()
			},
			wantErr: domain.ErrDegenerateSize,
		},
		{
			name: "send error",
			req:  domain.TransformRequest{Mode: domain.ASCII, ImageRef: "ref", Palette: "ab"},
			setup: func(c *MockConverter) {
				c.On("ASCII", mock.Anything, mock.Anything, "ab").Return("ab\n", nil).Once()
			},
			sendErr: errors.New("mock error"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv := new(MockConverter)
			tc.setup(conv)

			text := &mockTextSender{err: tc.sendErr}
			images := &mockImageSender{}
			fetcher := &mockFetcher{files: map[string][]byte{"ref": []byte("raw")}}

			d := NewDispatcher(fetcher, conv, text, images)
			err := d.Dispatch(t.Context(), 1, tc.req)

			switch {
			case tc.sendErr != nil:
				require.ErrorIs(t, err, tc.sendErr)
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
			default:
				require.NoError(t, err)
			}

			if tc.wantImage {
				assert.Equal(t, [][]byte{[]byte("jpeg")}, images.images)
			} else {
				assert.Empty(t, images.images)
			}

			if tc.wantText != "" {
				assert.Equal(t, []string{tc.wantText}, text.preformatted)
			}

			conv.AssertExpectations(t)
		})
	}
}
