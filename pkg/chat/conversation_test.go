package chat_test

import (
	"github.com/Achintharya/eightfold-bot/pkg/chat"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Conversation", func() {
	Describe("NewConversation", func() {
		It("should start with no messages", func() {
			conv := chat.NewConversation()

			Expect(chat.GetMessages(conv)).To(BeEmpty())
		})
	})

	Describe("AddMessage", func() {
		It("should not mutate the original conversation", func() {
			conv := chat.NewConversation()
			msg := chat.NewUserMessage("hello")

			updated := chat.AddMessage(conv, msg)

			Expect(chat.GetMessages(conv)).To(BeEmpty())
			Expect(chat.GetMessages(updated)).To(HaveLen(1))
		})

		It("should preserve message order", func() {
			conv := chat.NewConversation()
			conv = chat.AddMessage(conv, chat.NewUserMessage("research Acme"))
			conv = chat.AddMessage(conv, chat.NewAgentMessage("Starting fresh research on Acme"))
			conv = chat.AddMessage(conv, chat.NewUserMessage("save the plan"))

			messages := chat.GetMessages(conv)
			Expect(messages).To(HaveLen(3))
			Expect(messages[0].Content).To(Equal("research Acme"))
			Expect(messages[1].Role).To(Equal(chat.RoleAgent))
			Expect(messages[2].Content).To(Equal("save the plan"))
		})
	})

	Describe("GetMessages", func() {
		It("should return a copy the caller cannot use to mutate the conversation", func() {
			conv := chat.NewConversation()
			conv = chat.AddMessage(conv, chat.NewUserMessage("hello"))

			messages := chat.GetMessages(conv)
			messages[0].Content = "tampered"

			Expect(chat.GetMessages(conv)[0].Content).To(Equal("hello"))
		})
	})
})
