package cash

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
)

func TestController(t *testing.T) {
	Convey("Given a ledger with one funded account", t, func() {
		db := store.MemStore()
		ctrl := NewController(NewBucket())

		alice := weavetest.RandomAddr(t)
		bob := weavetest.RandomAddr(t)

		So(ctrl.CoinMint(db, alice, coin.NewCoin(100, 500, "IOV")), ShouldBeNil)
		So(ctrl.CoinMint(db, alice, coin.NewCoin(3, 0, "ETH")), ShouldBeNil)

		Convey("The balance lists all coins sorted", func() {
			coins, err := ctrl.Balance(db, alice)
			So(err, ShouldBeNil)
			So(coins.Equals(coin.Coins{coin.NewCoinp(3, 0, "ETH"), coin.NewCoinp(100, 500, "IOV")}), ShouldBeTrue)
		})

		Convey("An account without a wallet has no balance", func() {
			_, err := ctrl.Balance(db, bob)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Coins can be moved", func() {
			So(ctrl.MoveCoins(db, alice, bob, coin.NewCoin(40, 0, "IOV")), ShouldBeNil)

			coins, err := ctrl.Balance(db, alice)
			So(err, ShouldBeNil)
			So(coins.Balance("IOV"), ShouldResemble, coin.NewCoin(60, 500, "IOV"))

			coins, err = ctrl.Balance(db, bob)
			So(err, ShouldBeNil)
			So(coins.Balance("IOV"), ShouldResemble, coin.NewCoin(40, 0, "IOV"))

			Convey("Repeated transfers accumulate", func() {
				So(ctrl.MoveCoins(db, alice, bob, coin.NewCoin(0, 500, "IOV")), ShouldBeNil)
				coins, err := ctrl.Balance(db, bob)
				So(err, ShouldBeNil)
				So(coins.Balance("IOV"), ShouldResemble, coin.NewCoin(40, 500, "IOV"))
			})
		})

		Convey("Moving the whole balance removes the coin from the wallet", func() {
			So(ctrl.MoveCoins(db, alice, bob, coin.NewCoin(3, 0, "ETH")), ShouldBeNil)
			coins, err := ctrl.Balance(db, alice)
			So(err, ShouldBeNil)
			So(len(coins), ShouldEqual, 1)
			So(coins.Balance("ETH").IsZero(), ShouldBeTrue)
		})

		Convey("A zero amount is a valid transfer that changes nothing", func() {
			So(ctrl.MoveCoins(db, alice, bob, coin.NewCoin(0, 0, "IOV")), ShouldBeNil)
			_, err := ctrl.Balance(db, bob)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("A zero amount from an empty account is valid", func() {
			So(ctrl.MoveCoins(db, bob, alice, coin.NewCoin(0, 0, "DOGE")), ShouldBeNil)
		})

		Convey("A negative amount is rejected", func() {
			err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(-1, 0, "IOV"))
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
		})

		Convey("Insufficient funds are rejected", func() {
			err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(100, 501, "IOV"))
			So(errors.ErrAmount.Is(err), ShouldBeTrue)

			err = ctrl.MoveCoins(db, bob, alice, coin.NewCoin(1, 0, "IOV"))
			So(errors.ErrAmount.Is(err), ShouldBeTrue)

			coins, err := ctrl.Balance(db, alice)
			So(err, ShouldBeNil)
			So(coins.Balance("IOV"), ShouldResemble, coin.NewCoin(100, 500, "IOV"))
		})

		Convey("Moving coins to self does not create coins", func() {
			So(ctrl.MoveCoins(db, alice, alice, coin.NewCoin(10, 0, "IOV")), ShouldBeNil)
			coins, err := ctrl.Balance(db, alice)
			So(err, ShouldBeNil)
			So(coins.Balance("IOV"), ShouldResemble, coin.NewCoin(100, 500, "IOV"))
		})

		Convey("An invalid currency is rejected", func() {
			err := ctrl.MoveCoins(db, alice, bob, coin.NewCoin(1, 0, "invalid"))
			So(errors.ErrCurrency.Is(err), ShouldBeTrue)
		})

		Convey("Minting a non positive amount is rejected", func() {
			err := ctrl.CoinMint(db, bob, coin.NewCoin(0, 0, "IOV"))
			So(errors.ErrAmount.Is(err), ShouldBeTrue)
		})
	})
}
