package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/competition --output domain/competition --outpkg competitionmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DigestRepository --dir ../domain/news --output domain/news --outpkg newsmock --filename digest_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name HistoryLogRepository --dir ../domain/news --output domain/news --outpkg newsmock --filename history_log_repository_mock.go
