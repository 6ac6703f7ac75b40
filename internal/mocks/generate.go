package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleFetcher --dir ../interfaces --output interfaces --outpkg interfacesmock --filename schedule_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SnapshotRepository --dir ../interfaces --output interfaces --outpkg interfacesmock --filename snapshot_repository_mock.go
