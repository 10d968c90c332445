package observability

/*
ResolveFeedback is used to get feedback while resolving a batch of urls.
It is mostly used for UX purposes (progress bar)
*/
type ResolveFeedback interface {
	Init(nbTotal int)
	LoadingAsset(nb int)
}
