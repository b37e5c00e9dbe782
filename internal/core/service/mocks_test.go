package service

import (
	"context"
	"pixbot/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockTextSender struct {
	mutex        sync.Mutex
	texts        []string
	preformatted []string
	notified     []error
	err          error
}

func (m *mockTextSender) SendText(_ context.Context, _ domain.SessionKey, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.texts = append(m.texts, text)
	return m.err
}

func (m *mockTextSender) SendPreformatted(_ context.Context, _ domain.SessionKey, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.preformatted = append(m.preformatted, text)
	return m.err
}

func (m *mockTextSender) SendChatAction(_ context.Context, _ domain.SessionKey, _ domain.Action) {
	// mocked
}

func (m *mockTextSender) NotifyAndReturnError(_ context.Context, _ domain.SessionKey, err error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.notified = append(m.notified, err)
	m.texts = append(m.texts, domain.Describe(err))
	return err
}

func (m *mockTextSender) Texts() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]string(nil), m.texts...)
}

type mockImageSender struct {
	mutex  sync.Mutex
	images [][]byte
	err    error
}

func (m *mockImageSender) SendImage(_ context.Context, _ domain.SessionKey, file []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.images = append(m.images, file)
	return m.err
}

type mockPresenter struct {
	mutex   sync.Mutex
	prompts []string
	choices [][]domain.Choice
	err     error
}

func (m *mockPresenter) PresentChoice(_ context.Context, _ domain.SessionKey, text string, choices []domain.Choice) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prompts = append(m.prompts, text)
	m.choices = append(m.choices, choices)
	return m.err
}

type mockFetcher struct {
	mutex sync.Mutex
	files map[string][]byte
	calls []string
	err   error
}

func (m *mockFetcher) FetchImage(_ context.Context, imageRef string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.calls = append(m.calls, imageRef)
	if m.err != nil {
		return nil, m.err
	}

	data, ok := m.files[imageRef]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Pixelate(ctx context.Context, data []byte) ([]byte, error) {
	args := m.Called(ctx, data)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

func (m *MockConverter) ASCII(ctx context.Context, data []byte, palette string) (string, error) {
	args := m.Called(ctx, data, palette)
	return args.String(0), args.Error(1)
}
