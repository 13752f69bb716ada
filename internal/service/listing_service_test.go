package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"apkdownloader/internal/csvexport"
	"apkdownloader/internal/domain"
	"apkdownloader/internal/service"
	"apkdownloader/internal/xlsxexport"
	"apkdownloader/mocks"
)

func TestListingService_List_Success(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	apk := "https://cdn/APP/app.apk"
	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{
		{APKURL: &apk, IPAURL: "https://cdn/IOS/app.ipa", ImageURLs: domain.URLList{"https://cdn/IMAGES/a.png", "https://cdn/IMAGES/b.png"}},
		{IPAURL: "https://cdn/IOS/second.ipa", ImageURLs: domain.URLList{}},
	}, nil)

	listings, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, apk, listings[0].APKURL)
	assert.Equal(t, []string{"https://cdn/IMAGES/a.png", "https://cdn/IMAGES/b.png"}, listings[0].ImageURLs)
	assert.Equal(t, domain.NotAvailable, listings[1].APKURL)
	assert.Equal(t, "https://cdn/IOS/second.ipa", listings[1].IPAURL)
	repo.AssertExpectations(t)
}

func TestListingService_List_MissingFieldsUseSentinels(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{{}}, nil)

	listings, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, domain.NotAvailable, listings[0].APKURL)
	assert.Equal(t, domain.NotAvailable, listings[0].IPAURL)
	assert.NotNil(t, listings[0].ImageURLs)
	assert.Empty(t, listings[0].ImageURLs)
}

func TestListingService_List_Empty(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{}, nil)

	listings, err := svc.List(context.Background())

	assert.Nil(t, listings)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingService_List_RepoError(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return(nil, errors.New("uploadRecordRepo.List: timeout"))

	listings, err := svc.List(context.Background())

	assert.Nil(t, listings)
	assert.ErrorContains(t, err, "timeout")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestListingService_List_NeverExceedsCap(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 500)

	records := make([]domain.UploadRecord, 150)
	for i := range records {
		records[i] = domain.UploadRecord{IPAURL: fmt.Sprintf("https://cdn/IOS/%d.ipa", i)}
	}
	repo.On("List", mock.Anything, domain.MaxListedRecords).Return(records, nil)

	listings, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, listings, domain.MaxListedRecords)
	assert.Equal(t, "https://cdn/IOS/0.ipa", listings[0].IPAURL)
	repo.AssertExpectations(t)
}

func TestListingService_List_CustomLimit(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 10)

	repo.On("List", mock.Anything, 10).Return([]domain.UploadRecord{{IPAURL: "x"}}, nil)

	_, err := svc.List(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListingService_Export(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{
		{IPAURL: "https://cdn/IOS/app.ipa", ImageURLs: domain.URLList{"https://cdn/IMAGES/a.png"}},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), domain.ExportXLSX, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsxexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.NotAvailable, rows[1][0])
}

func TestListingService_Export_Empty(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return(nil, nil)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), domain.ExportXLSX, &buf)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestListingService_Export_CSV(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{
		{IPAURL: "https://cdn/IOS/app.ipa", ImageURLs: domain.URLList{"https://cdn/IMAGES/a.png"}},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), domain.ExportCSV, &buf))

	body := buf.String()
	assert.True(t, strings.HasPrefix(body, string(csvexport.BOM)))
	assert.Contains(t, body, "APK URL,IPA URL,Image Count,Image URLs,Uploaded At")
	assert.Contains(t, body, "not available,https://cdn/IOS/app.ipa,1,https://cdn/IMAGES/a.png,")
}

func TestListingService_Export_UnknownFormat(t *testing.T) {
	repo := new(mocks.MockUploadRecordRepo)
	svc := service.NewListingService(repo, 100)

	repo.On("List", mock.Anything, 100).Return([]domain.UploadRecord{{IPAURL: "x"}}, nil)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), domain.ExportFormat("pdf"), &buf)

	assert.ErrorContains(t, err, "unsupported format")
}
