package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/prospect --output domain/prospect --outpkg prospectmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name DraftStore --dir ../domain/onboarding --output domain/onboarding --outpkg onboardingmock --filename draft_store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ObjectStore --dir ../domain/document --output domain/document --outpkg documentmock --filename object_store_mock.go
