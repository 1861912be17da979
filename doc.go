// Package ragpipe answers questions over a private knowledge base using
// retrieval-augmented generation: a query is embedded, ranked against the
// knowledge pool by cosine similarity, and the top chunks are fed to a
// completion model as grounded context.
//
// # Answering queries
//
//	client, _ := ragpipe.New(ctx,
//	    ragpipe.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	    ragpipe.WithPostgres(os.Getenv("DATABASE_URL")),
//	)
//	defer client.Close()
//
//	ans, _ := client.Answer(ctx, "What does the policy cover?")
//	fmt.Println(ans.Text, ans.Sources, ans.Confidence)
//
// # Grading a batch
//
// A quality run executes a batch of queries and scores the fraction that
// produce a confident, source-backed answer. One failing query never aborts
// the batch.
//
//	report, _ := client.QualityRun(ctx, []string{
//	    "What does the policy cover?",
//	    "How do I file a claim?",
//	})
//	fmt.Printf("score: %.2f\n", report.Score)
//
// Custom knowledge sources and providers plug in through the Source,
// Embedder, and Completer interfaces.
package ragpipe
