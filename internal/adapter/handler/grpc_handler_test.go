package handler

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

func dialCartService(t *testing.T, svc *service.CartService) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCartServiceServer(srv, NewGRPCHandler(svc))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func invoke(t *testing.T, conn *grpc.ClientConn, method string, in any, out any) error {
	t.Helper()
	return conn.Invoke(context.Background(), "/"+CartServiceName+"/"+method, in, out)
}

func TestGRPCAddProduct(t *testing.T) {
	svc := newTestCartService(t)
	conn := dialCartService(t, svc)

	out := new(wrapperspb.StringValue)
	require.NoError(t, invoke(t, conn, "AddProduct", wrapperspb.Int64(1), out))
	assert.Empty(t, out.GetValue())

	require.NoError(t, invoke(t, conn, "AddProduct", wrapperspb.Int64(99), out))
	assert.Equal(t, service.MsgAddFailed, out.GetValue())
	assert.Equal(t, 1, svc.Cart().Len())
}

func TestGRPCGetCart(t *testing.T) {
	svc := newTestCartService(t, domain.LineItem{ID: 1, Title: "Tênis", Price: 100, Image: "t.jpg", Amount: 2})
	conn := dialCartService(t, svc)

	out := new(structpb.ListValue)
	require.NoError(t, invoke(t, conn, "GetCart", &emptypb.Empty{}, out))

	require.Len(t, out.GetValues(), 1)
	fields := out.GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, 1.0, fields["id"].GetNumberValue())
	assert.Equal(t, "Tênis", fields["title"].GetStringValue())
	assert.Equal(t, 2.0, fields["amount"].GetNumberValue())
}

func TestGRPCRemoveProduct(t *testing.T) {
	svc := newTestCartService(t, domain.LineItem{ID: 1, Amount: 1})
	conn := dialCartService(t, svc)

	out := new(wrapperspb.StringValue)
	require.NoError(t, invoke(t, conn, "RemoveProduct", wrapperspb.Int64(1), out))
	assert.Empty(t, out.GetValue())
	assert.Equal(t, 0, svc.Cart().Len())
}

func TestGRPCUpdateProductAmount(t *testing.T) {
	svc := newTestCartService(t, domain.LineItem{ID: 1, Amount: 1})
	conn := dialCartService(t, svc)

	req, err := structpb.NewStruct(map[string]any{"productId": 1, "amount": 3})
	require.NoError(t, err)
	out := new(wrapperspb.StringValue)
	require.NoError(t, invoke(t, conn, "UpdateProductAmount", req, out))
	assert.Empty(t, out.GetValue())

	item, _ := svc.Cart().Find(1)
	assert.Equal(t, 3, item.Amount)

	req, err = structpb.NewStruct(map[string]any{"productId": 1, "amount": 4})
	require.NoError(t, err)
	require.NoError(t, invoke(t, conn, "UpdateProductAmount", req, out))
	assert.Equal(t, service.MsgStockExhausted, out.GetValue())
}

func TestGRPCUpdateProductAmount_InvalidArgument(t *testing.T) {
	conn := dialCartService(t, newTestCartService(t, domain.LineItem{ID: 1, Amount: 1}))

	req, err := structpb.NewStruct(map[string]any{"productId": 1, "amount": 1.5})
	require.NoError(t, err)
	err = invoke(t, conn, "UpdateProductAmount", req, new(wrapperspb.StringValue))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req, err = structpb.NewStruct(map[string]any{"amount": 1})
	require.NoError(t, err)
	err = invoke(t, conn, "UpdateProductAmount", req, new(wrapperspb.StringValue))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
