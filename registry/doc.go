/*
Package registry keeps the overrides that stand in for SDK operations during tests.

An override is registered for a (service, method) pair. Matching ignores case, so
"KMS"/"DescribeKey" and "kms"/"describekey" address the same entry. Registering the
same pair again replaces the entry with a fresh one: the newest registration wins and
call history starts from zero.

	reg := registry.New()
	entry := reg.Register("KMS", "DescribeKey", func(_ context.Context, _ any, _ registry.Callback) any {
		return &kms.DescribeKeyOutput{}
	})

	// ... exercise code under test ...

	entry.AssertNumberOfCalls(t, 1)
	reg.ResetAll()

Call tracking is delegated to a testify mock.Mock, so the usual assertion helpers apply.
*/
package registry
