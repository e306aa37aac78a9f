package openrouter

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Ophelia-Chat/ophelia-sub001/internal/utils"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/observability"
)

// StreamCompletion implements [ai.Provider] for the OpenRouter gateway.
// The request envelope is the OpenAI chat completions format; the response
// chunks depend on the routed upstream, so decoding is path-based and
// tolerant rather than struct-bound.
func (provider *OpenRouterProvider) StreamCompletion(ctx context.Context, request ai.CompletionRequest) (*ai.CompletionStream, error) {
	observer := observability.ObserverFromContext(ctx)

	apiKey := provider.currentAPIKey()
	if apiKey == "" {
		return nil, ai.NewError(ai.ErrInvalidCredential, "OPENROUTER_API_KEY is not set")
	}

	if observer != nil {
		observer.Trace(ctx, "openrouter provider preparing streaming request",
			observability.String(observability.AttrLLMProvider, "openrouter"),
			observability.String(observability.AttrLLMEndpoint, provider.baseURL),
			observability.String(observability.AttrLLMModel, request.Model),
			observability.Int(observability.AttrMessagesCount, len(request.Messages)),
		)
	}

	streamURL := provider.baseURL + chatCompletionsEndpoint
	chatRequest := requestToChatCompletion(request)

	httpResponse, err := utils.DoPostStream(ctx, provider.client, streamURL, apiKey, chatRequest, provider.buildHeaders()...)
	if err != nil {
		classified := ai.ClassifyRequestError(ctx, err)
		if observer != nil {
			observer.Warn(ctx, "openrouter streaming request failed", observability.Error(classified))
		}
		return nil, classified
	}

	streamCtx, cancel := context.WithCancel(ctx)
	producer := ai.NewStreamProducer(streamCtx)
	go provider.readLoop(streamCtx, httpResponse.Body, producer, observer)

	return producer.Stream(cancel), nil
}

// readLoop decodes the SSE body into text fragments until the [DONE]
// sentinel or end of input, a gateway error frame, a transport failure, or
// cancellation. Frames that are not valid JSON, and valid frames with no
// delta text, are skipped.
func (provider *OpenRouterProvider) readLoop(ctx context.Context, body io.ReadCloser, producer *ai.StreamProducer, observer observability.Observer) {
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
			if observer != nil {
				observer.Trace(ctx, "openrouter stream completed",
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

		if !gjson.Valid(payload) {
			if observer != nil {
				observer.Warn(ctx, "skipping malformed stream frame",
					observability.String(observability.AttrFramePayload, observability.Redact(utils.TruncateString(payload, 200))),
				)
			}
			continue
		}

		// OpenRouter reports mid-stream upstream failures as an error frame
		// on an otherwise 200 stream.
		if errMessage := gjson.Get(payload, "error.message"); errMessage.Exists() {
			producer.Fail(ai.NewError(ai.ErrServer, errMessage.String()))
			return
		}

		aborted := false
		gjson.Get(payload, "choices.#.delta.content").ForEach(func(_, content gjson.Result) bool {
			text := content.String()
			if text == "" {
				return true
			}
			if !producer.Text(text) {
				producer.Fail(ai.Cancelled(ctx))
				aborted = true
				return false
			}
			accumulated.WriteString(text)
			fragments++
			return true
		})
		if aborted {
			return
		}
	}
}
