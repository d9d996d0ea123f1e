package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	ListingsCollection      *mongo.Collection
	BookingsCollection      *mongo.Collection
	ReviewsCollection       *mongo.Collection
	ConversationsCollection *mongo.Collection
	MessagesCollection      *mongo.Collection
	Client                  *mongo.Client
)

// Collection base names. The deployed name is prefixed by COLLECTION_PREFIX
// (empty in development, "prod_" in production).
const (
	UsersCollectionName         = "users"
	ListingsCollectionName      = "listings"
	BookingsCollectionName      = "booking_requests"
	ReviewsCollectionName       = "reviews"
	ConversationsCollectionName = "conversations"
	MessagesCollectionName      = "messages"
)

// CollectionName returns the environment-prefixed name for a base collection name.
func CollectionName(base string) string {
	return os.Getenv("COLLECTION_PREFIX") + base
}

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("mesterodb")
	UserCollection = database.Collection(CollectionName(UsersCollectionName))
	ListingsCollection = database.Collection(CollectionName(ListingsCollectionName))
	BookingsCollection = database.Collection(CollectionName(BookingsCollectionName))
	ReviewsCollection = database.Collection(CollectionName(ReviewsCollectionName))
	ConversationsCollection = database.Collection(CollectionName(ConversationsCollectionName))
	MessagesCollection = database.Collection(CollectionName(MessagesCollectionName))
}
