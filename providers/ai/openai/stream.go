package openai

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/observability"
)

// StreamCompletion implements [ai.Provider] for the chat completions
// endpoint. It sends a streaming request (stream=true) and returns a stream
// of text fragments decoded from the SSE chunks as they arrive.
//
// Pre-network failures and the status-line mapping are returned immediately
// as a non-nil error; after streaming begins, the single terminal signal
// travels through the stream.
func (provider *OpenAIProvider) StreamCompletion(ctx context.Context, request ai.CompletionRequest) (*ai.CompletionStream, error) {
	observer := observability.ObserverFromContext(ctx)

	apiKey := provider.currentAPIKey()
	if apiKey == "" {
		return nil, ai.NewError(ai.ErrInvalidCredential, "OPENAI_API_KEY is not set")
	}

	if observer != nil {
		observer.Trace(ctx, "openai provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "openai"),
			observability.String(observability.AttrLLMEndpoint, provider.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrMessagesCount, len(request.Messages)),
		)
	}

	streamURL := provider.baseURL + chatCompletionsEndpoint
	chatRequest := requestToChatCompletion(request)

	httpResponse, err := utils.DoPostStream(ctx, provider.client, streamURL, apiKey, chatRequest)
	if err != nil {
		classified := ai.ClassifyRequestError(ctx, err)
		if observer != nil {
			observer.Warn(ctx, "openai streaming request failed", observability.Error(classified))
		}
		return nil, classified
	}

	streamCtx, cancel := context.WithCancel(ctx)
	producer := ai.NewStreamProducer(streamCtx)
	go provider.readLoop(streamCtx, httpResponse.Body, producer, observer)

	return producer.Stream(cancel), nil
}

// readLoop decodes the SSE body into text fragments until the [DONE]
// sentinel or end of input, a transport failure, or cancellation. One
// malformed frame never aborts the stream; it is logged and skipped.
func (provider *OpenAIProvider) readLoop(ctx context.Context, body io.ReadCloser, producer *ai.StreamProducer, observer observability.Observer) {
	defer producer.Close()
	defer utils.CloseWithLog(body)

	scanner := utils.NewSSEScanner(body)
	start := time.Now()

	var accumulated strings.Builder
	fragments := 0

	for {
		if ctx.Err() != nil {
			producer.Fail(ai.Cancelled(ctx))
			return
		}

		payload, sseErr := scanner.Next()
		if sseErr == io.EOF {
			// The [DONE] sentinel and a closed connection both end the
			// sequence successfully; they are indistinguishable here.
			if observer != nil {
				observer.Trace(ctx, "openai stream completed",
					observability.Int(observability.AttrFragmentsEmitted, fragments),
					observability.Int(observability.AttrCharsEmitted, accumulated.Len()),
					observability.Duration("llm.stream.duration", time.Since(start)),
				)
			}
			return
		}
		if sseErr != nil {
			if ctx.Err() != nil {
				producer.Fail(ai.Cancelled(ctx))
			} else {
				producer.Fail(ai.NewError(ai.ErrNetwork, sseErr.Error()))
			}
			return
		}

		chunk, parseErr := unmarshalStreamChunk(payload)
		if parseErr != nil {
			if observer != nil {
				observer.Warn(ctx, "skipping malformed stream frame",
					observability.String(observability.AttrFramePayload, observability.Redact(utils.TruncateString(payload, 200))),
					observability.Error(parseErr),
				)
			}
			continue
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content == nil || *choice.Delta.Content == "" {
				// Role announcements, empty deltas and finish_reason-only
				// chunks carry no text.
				continue
			}
			if !producer.Text(*choice.Delta.Content) {
				producer.Fail(ai.Cancelled(ctx))
				return
			}
			accumulated.WriteString(*choice.Delta.Content)
			fragments++
		}
	}
}
